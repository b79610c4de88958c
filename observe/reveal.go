package observe

import "github.com/aydenstechdungeon/folio/dom"

// RevealThreshold is the visible fraction that triggers a reveal.
const RevealThreshold = 0.12

// Reveal adds "visible" to each .reveal element the first time it scrolls
// into view. It returns nil when the page has none.
func Reveal(doc *dom.Document) *Observer {
	elements := doc.Find(".reveal").Nodes
	if len(elements) == 0 {
		return nil
	}
	o := New(doc, RevealThreshold, func(e Entry, o *Observer) {
		if !e.IsIntersecting {
			return
		}
		dom.AddClass(e.Target, "visible")
		o.Unobserve(e.Target)
	})
	for _, n := range elements {
		o.Observe(n)
	}
	return o
}

// LazyImages swaps data-src into src for lazy images as they become
// visible. It returns nil when the page has none.
func LazyImages(doc *dom.Document) *Observer {
	images := doc.Find(`img[loading="lazy"]`).Nodes
	if len(images) == 0 {
		return nil
	}
	o := New(doc, 0, func(e Entry, o *Observer) {
		if !e.IsIntersecting {
			return
		}
		if src, ok := dom.Attr(e.Target, "data-src"); ok && src != "" {
			dom.SetAttr(e.Target, "src", src)
		}
		o.Unobserve(e.Target)
	})
	for _, n := range images {
		o.Observe(n)
	}
	return o
}
