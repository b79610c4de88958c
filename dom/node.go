package dom

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, adding it when missing.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// Classes returns the element's class list.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether the element carries class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to the element's class list.
func AddClass(n *html.Node, class string) {
	if n == nil || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(Classes(n), class), " ")))
}

// RemoveClass removes class from the element's class list. The class
// attribute stays in place, possibly empty, as it does in a browser.
func RemoveClass(n *html.Node, class string) {
	if n == nil || !HasClass(n, class) {
		return
	}
	kept := make([]string, 0, len(Classes(n)))
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds class when on is true and removes it otherwise.
func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Style returns one inline style property, or "" when unset.
func Style(n *html.Node, prop string) string {
	for _, decl := range styleDecls(n) {
		if decl[0] == prop {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets one inline style property. An empty value removes it.
func SetStyle(n *html.Node, prop, val string) {
	if n == nil {
		return
	}
	decls := styleDecls(n)
	out := make([]string, 0, len(decls)+1)
	replaced := false
	for _, decl := range decls {
		if decl[0] == prop {
			replaced = true
			if val == "" {
				continue
			}
			decl[1] = val
		}
		out = append(out, decl[0]+": "+decl[1])
	}
	if !replaced && val != "" {
		out = append(out, prop+": "+val)
	}
	if len(out) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(out, "; "))
}

func styleDecls(n *html.Node) [][2]string {
	v, _ := Attr(n, "style")
	var decls [][2]string
	for _, part := range strings.Split(v, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, [2]string{prop, strings.TrimSpace(val)})
	}
	return decls
}

// IsWithin reports whether n is ancestor or n itself.
func IsWithin(n, ancestor *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

var plainID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Selector returns a CSS selector whose first match in n's document is n:
// the id when it is a plain identifier held by no earlier element,
// otherwise a child-combinator path with :nth-child steps.
func Selector(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if id, ok := Attr(n, "id"); ok && plainID.MatchString(id) {
		root := n
		for root.Parent != nil {
			root = root.Parent
		}
		if firstWithID(root, id) == n {
			return "#" + id
		}
	}
	var steps []string
	for e := n; e != nil && e.Type == html.ElementNode; e = e.Parent {
		if e.Parent == nil || e.Parent.Type != html.ElementNode {
			steps = append(steps, e.Data)
			break
		}
		pos := 1
		for s := e.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode {
				pos++
			}
		}
		steps = append(steps, e.Data+":nth-child("+strconv.Itoa(pos)+")")
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return strings.Join(steps, " > ")
}
