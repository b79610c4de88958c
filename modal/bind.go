package modal

import "github.com/aydenstechdungeon/folio/dom"

// Bind connects the document's click and keydown streams to c.
func Bind(doc *dom.Document, c *Controller) {
	doc.AddEventListener(dom.Click, func(ev *dom.Event) {
		target := doc.Wrap(ev.Target)

		if trigger := target.Closest("[" + TriggerAttr + "]"); trigger.Length() > 0 {
			id, _ := trigger.Attr(TriggerAttr)
			c.Open(id, trigger.Get(0))
			return
		}
		if target.Closest("["+CloseAttr+"]").Length() > 0 {
			c.Close(true)
			return
		}
		if b := c.backdrop(); b != nil && dom.IsWithin(ev.Target, b) {
			c.Close(true)
		}
	})

	doc.AddEventListener(dom.KeyDown, func(ev *dom.Event) {
		switch ev.Key {
		case "Escape":
			c.HandleEscape()
		case "Tab":
			if c.HandleTabTrap(ev.Shift) {
				ev.PreventDefault()
			}
		}
	})
}
