// Package dom provides a headless HTML document for driving page behavior
// without a browser. It tracks what a browser keeps outside the markup:
// the focused element, scroll offsets, live form values, the location path,
// document-level event listeners and a single-threaded timer queue.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed page plus the interaction state layered on top of it.
// It is not safe for concurrent use; callers serialize access the way a
// browser's UI thread does.
type Document struct {
	doc       *goquery.Document
	active    *html.Node
	scroll    map[*html.Node]int
	values    map[*html.Node]string
	scrollY   int
	path      string
	listeners map[EventType][]Listener
	clock     clock
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		doc:       doc,
		scroll:    make(map[*html.Node]int),
		values:    make(map[*html.Node]string),
		path:      "/",
		listeners: make(map[EventType][]Listener),
	}, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the <html> element.
func (d *Document) Root() *html.Node {
	return d.doc.Find("html").Get(0)
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.doc.Find("body").Get(0)
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Wrap returns a selection holding n, or an empty selection when n is nil
// or no longer attached to the document.
func (d *Document) Wrap(n *html.Node) *goquery.Selection {
	if n == nil {
		return d.doc.FindNodes()
	}
	return d.doc.FindNodes(n)
}

// ByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return firstWithID(d.doc.Get(0), id)
}

// firstWithID returns the first element under root, in document order,
// whose id is id.
func firstWithID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Contains reports whether n is still attached to the document.
func (d *Document) Contains(n *html.Node) bool {
	if n == nil {
		return false
	}
	top := d.doc.Get(0)
	for p := n; p != nil; p = p.Parent {
		if p == top {
			return true
		}
	}
	return false
}

// Order returns the position of n in a pre-order walk of the document,
// or -1 when n is not attached.
func (d *Document) Order(n *html.Node) int {
	pos, i := -1, 0
	walk(d.doc.Get(0), func(c *html.Node) bool {
		if c == n {
			pos = i
			return false
		}
		i++
		return true
	})
	return pos
}

// Focus moves input focus to n. Detached or nil nodes leave focus unchanged.
// No focus or blur events are dispatched.
func (d *Document) Focus(n *html.Node) bool {
	if !d.Contains(n) {
		return false
	}
	d.active = n
	return true
}

// ActiveElement returns the focused element, or the body when nothing
// attached holds focus.
func (d *Document) ActiveElement() *html.Node {
	if d.active != nil && d.Contains(d.active) {
		return d.active
	}
	return d.Body()
}

// ScrollTop returns the vertical scroll offset of an element.
func (d *Document) ScrollTop(n *html.Node) int {
	return d.scroll[n]
}

// SetScrollTop sets the vertical scroll offset of an element.
func (d *Document) SetScrollTop(n *html.Node, top int) {
	if n == nil {
		return
	}
	if top < 0 {
		top = 0
	}
	d.scroll[n] = top
}

// ScrollY returns the window's vertical scroll position.
func (d *Document) ScrollY() int {
	return d.scrollY
}

// ScrollWindowTo scrolls the window and dispatches a scroll event.
func (d *Document) ScrollWindowTo(y int) {
	if y < 0 {
		y = 0
	}
	d.scrollY = y
	d.Dispatch(&Event{Type: Scroll, Target: d.Root()})
}

// Path returns the document location path.
func (d *Document) Path() string {
	return d.path
}

// SetPath sets the document location path.
func (d *Document) SetPath(p string) {
	if p == "" {
		p = "/"
	}
	d.path = p
}

// Value returns the live value of a form control. Controls that were never
// edited report the value from their markup.
func (d *Document) Value(n *html.Node) string {
	if n == nil {
		return ""
	}
	if v, ok := d.values[n]; ok {
		return v
	}
	return defaultValue(n)
}

// SetValue sets the live value of a form control without touching markup.
func (d *Document) SetValue(n *html.Node, v string) {
	if n == nil {
		return
	}
	d.values[n] = v
}

// ResetForm restores every control inside form to its markup value.
func (d *Document) ResetForm(form *html.Node) {
	if form == nil {
		return
	}
	walk(form, func(n *html.Node) bool {
		delete(d.values, n)
		return true
	})
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc.Get(0))
}

// HasDoctype reports whether the parsed markup carried a doctype.
func (d *Document) HasDoctype() bool {
	for c := d.doc.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return true
		}
	}
	return false
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func defaultValue(n *html.Node) string {
	switch n.Data {
	case "textarea":
		return Text(n)
	case "select":
		var first, selected string
		var haveFirst, haveSelected bool
		walk(n, func(c *html.Node) bool {
			if c.Type != html.ElementNode || c.Data != "option" {
				return true
			}
			v, ok := Attr(c, "value")
			if !ok {
				v = Text(c)
			}
			if !haveFirst {
				first, haveFirst = v, true
			}
			if _, ok := Attr(c, "selected"); ok && !haveSelected {
				selected, haveSelected = v, true
			}
			return true
		})
		if haveSelected {
			return selected
		}
		return first
	default:
		v, _ := Attr(n, "value")
		return v
	}
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
