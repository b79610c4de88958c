package nav

import (
	"strconv"

	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/state"
	"golang.org/x/net/html"
)

// MenuToggleID is the id of the hamburger button.
const MenuToggleID = "menu-toggle"

// Menu is the collapsible mobile menu.
type Menu struct {
	doc    *dom.Document
	toggle *html.Node
	links  *html.Node
	open   *state.Rune[bool]
}

// NewMenu returns nil when the page has no toggle button or no link list.
func NewMenu(doc *dom.Document) *Menu {
	toggle := doc.ByID(MenuToggleID)
	links := doc.Find(linksSelector).Get(0)
	if toggle == nil || links == nil {
		return nil
	}
	return &Menu{doc: doc, toggle: toggle, links: links, open: state.NewRune(false)}
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() bool {
	m.set(!dom.HasClass(m.links, "open"))
	return m.IsOpen()
}

// Close collapses the menu.
func (m *Menu) Close() {
	m.set(false)
}

// IsOpen reports whether the link list is expanded.
func (m *Menu) IsOpen() bool {
	return dom.HasClass(m.links, "open")
}

// State publishes the open flag.
func (m *Menu) State() *state.Rune[bool] {
	return m.open
}

func (m *Menu) set(open bool) {
	dom.ToggleClass(m.links, "open", open)
	dom.SetAttr(m.toggle, "aria-expanded", strconv.FormatBool(open))
	dom.ToggleClass(m.toggle, "active", open)
	m.animate(open)
	m.open.Set(open)
}

// animate turns the three hamburger bars into a cross and back.
func (m *Menu) animate(open bool) {
	spans := m.doc.Wrap(m.toggle).Find("span").Nodes
	if !open {
		for _, s := range spans {
			dom.SetStyle(s, "transform", "")
			dom.SetStyle(s, "opacity", "")
		}
		return
	}
	if len(spans) < 3 {
		return
	}
	dom.SetStyle(spans[0], "transform", "rotate(45deg) translate(5px, 5px)")
	dom.SetStyle(spans[1], "opacity", "0")
	dom.SetStyle(spans[2], "transform", "rotate(-45deg) translate(5px, -5px)")
}
