// Package observe delivers visibility changes to interested elements, the
// way an intersection observer does in a browser. Visibility is reported to
// the document as intersect events carrying the visible ratio.
package observe

import (
	"github.com/aydenstechdungeon/folio/dom"
	"golang.org/x/net/html"
)

// Entry is one visibility change for an observed element.
type Entry struct {
	Target         *html.Node
	Ratio          float64
	IsIntersecting bool
}

// Callback receives entries for observed targets.
type Callback func(Entry, *Observer)

// Observer watches a set of elements. It is not safe for concurrent use.
type Observer struct {
	threshold float64
	callback  Callback
	targets   map[*html.Node]struct{}
}

// New creates an observer and subscribes it to doc's intersect events.
// An element intersects when it is visible at all and at least threshold
// of it is visible.
func New(doc *dom.Document, threshold float64, callback Callback) *Observer {
	o := &Observer{
		threshold: threshold,
		callback:  callback,
		targets:   make(map[*html.Node]struct{}),
	}
	doc.AddEventListener(dom.Intersect, o.handle)
	return o
}

// Observe starts watching n.
func (o *Observer) Observe(n *html.Node) {
	if n == nil {
		return
	}
	o.targets[n] = struct{}{}
}

// Unobserve stops watching n.
func (o *Observer) Unobserve(n *html.Node) {
	delete(o.targets, n)
}

// Observing reports whether n is watched.
func (o *Observer) Observing(n *html.Node) bool {
	_, ok := o.targets[n]
	return ok
}

// Len returns the number of watched elements.
func (o *Observer) Len() int {
	return len(o.targets)
}

func (o *Observer) handle(ev *dom.Event) {
	if !o.Observing(ev.Target) || o.callback == nil {
		return
	}
	o.callback(Entry{
		Target:         ev.Target,
		Ratio:          ev.Ratio,
		IsIntersecting: ev.Ratio > 0 && ev.Ratio >= o.threshold,
	}, o)
}
