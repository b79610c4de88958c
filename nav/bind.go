package nav

import "github.com/aydenstechdungeon/folio/dom"

// Bind wires the menu, link clicks and scroll effects. menu may be nil.
func Bind(doc *dom.Document, menu *Menu) {
	if menu != nil {
		doc.AddEventListener(dom.Click, func(ev *dom.Event) {
			switch {
			case dom.IsWithin(ev.Target, menu.toggle):
				menu.Toggle()
			case doc.Wrap(ev.Target).Closest("a").Length() > 0 && dom.IsWithin(ev.Target, menu.links):
				menu.Close()
			}
		})
	}

	if btn := doc.ByID(ScrollTopID); btn != nil {
		doc.AddEventListener(dom.Click, func(ev *dom.Event) {
			if dom.IsWithin(ev.Target, btn) {
				doc.ScrollWindowTo(0)
			}
		})
	}

	if doc.ByID(NavbarID) != nil || doc.ByID(ScrollTopID) != nil {
		doc.AddEventListener(dom.Scroll, func(*dom.Event) {
			ApplyScroll(doc)
		})
	}
}
