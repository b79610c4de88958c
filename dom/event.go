package dom

import "golang.org/x/net/html"

// EventType names an event the document can dispatch.
type EventType string

const (
	Click     EventType = "click"
	KeyDown   EventType = "keydown"
	Blur      EventType = "blur"
	Input     EventType = "input"
	Submit    EventType = "submit"
	Scroll    EventType = "scroll"
	Intersect EventType = "intersect"
)

// Event is a single dispatched event. Fields that do not apply to a type
// are left zero.
type Event struct {
	Type   EventType
	Target *html.Node
	// Key is the key name for keydown events ("Escape", "Tab", ...).
	Key string
	// Shift reports whether Shift was held during a keydown.
	Shift bool
	// Ratio is the visible fraction of Target for intersect events.
	Ratio float64

	defaultPrevented bool
}

// PreventDefault suppresses the action the host would otherwise take.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles a dispatched event.
type Listener func(*Event)

// AddEventListener registers fn for events of type t. Listeners run in
// registration order.
func (d *Document) AddEventListener(t EventType, fn Listener) {
	d.listeners[t] = append(d.listeners[t], fn)
}

// Dispatch delivers ev to every listener registered for its type and
// reports whether the default action was prevented. Keydown events without
// a target are aimed at the focused element.
func (d *Document) Dispatch(ev *Event) bool {
	if ev == nil {
		return false
	}
	if ev.Type == KeyDown && ev.Target == nil {
		ev.Target = d.ActiveElement()
	}
	listeners := make([]Listener, len(d.listeners[ev.Type]))
	copy(listeners, d.listeners[ev.Type])
	for _, fn := range listeners {
		fn(ev)
	}
	return ev.defaultPrevented
}
