// Package filter shows and hides project cards by type.
package filter

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/aydenstechdungeon/folio/dom"
	"golang.org/x/net/html"
)

const (
	ButtonSelector = ".filter-btn"
	CardSelector   = ".project-card"

	// All is the filter value that shows every card.
	All = "all"
)

// Apply activates button and hides the cards whose data-type does not match
// its data-filter. It returns the number of cards left visible, or -1 when
// button is not a filter button.
func Apply(doc *dom.Document, button *html.Node) int {
	buttons := doc.Find(ButtonSelector)
	cards := doc.Find(CardSelector)
	if buttons.Length() == 0 || cards.Length() == 0 || !buttons.IsNodes(button) {
		return -1
	}

	buttons.Each(func(_ int, s *goquery.Selection) {
		dom.RemoveClass(s.Get(0), "active")
	})
	dom.AddClass(button, "active")

	want, _ := dom.Attr(button, "data-filter")
	shown := 0
	cards.Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("data-type")
		show := want == All || typ == want
		dom.SetAttr(s.Get(0), "data-hidden", strconv.FormatBool(!show))
		if show {
			shown++
		}
	})
	return shown
}

// Bind wires clicks on the filter buttons.
func Bind(doc *dom.Document) {
	if doc.Find(ButtonSelector).Length() == 0 {
		return
	}
	doc.AddEventListener(dom.Click, func(ev *dom.Event) {
		if btn := doc.Wrap(ev.Target).Closest(ButtonSelector).Get(0); btn != nil {
			Apply(doc, btn)
		}
	})
}
