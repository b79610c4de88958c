// Package modal implements the page's modal dialogs: a single active modal,
// a shared backdrop, focus restore on close and a keyboard focus trap.
//
// Markup contract:
//
//	<button data-modal="contact-modal">Contact</button>
//	<div id="modal-backdrop" aria-hidden="true"></div>
//	<div id="contact-modal" class="modal" tabindex="-1" aria-hidden="true">
//	  <button data-close>Close</button>
//	  <div class="modal-body">...</div>
//	</div>
//
// Missing optional markup (the backdrop, the scroll region, an unknown modal
// id) turns the affected step into a no-op.
package modal

import (
	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/state"
	"golang.org/x/net/html"
)

const (
	// TriggerAttr marks an element that opens the modal it names.
	TriggerAttr = "data-modal"
	// CloseAttr marks an element that closes the active modal.
	CloseAttr = "data-close"
	// BackdropID is the id of the shared backdrop element.
	BackdropID = "modal-backdrop"
	// ActiveClass marks the visible modal and backdrop.
	ActiveClass = "active"
	// BodyOpenClass suppresses background scrolling while a modal is open.
	BodyOpenClass = "modal-open"
	// ScrollRegion selects the scrollable content inside a modal.
	ScrollRegion = ".modal-body"

	ariaHidden = "aria-hidden"
)

// Session is the single-slot record of the open modal.
// Trigger is nil whenever Modal is nil.
type Session struct {
	Modal   *html.Node
	Trigger *html.Node
}

// Controller owns the active modal of one document. It is not safe for
// concurrent use.
type Controller struct {
	doc     *dom.Document
	session Session
	active  *state.Rune[string]
}

// New creates a Controller with no modal open.
func New(doc *dom.Document) *Controller {
	return &Controller{
		doc:    doc,
		active: state.NewRune(""),
	}
}

// Open shows the modal with the given id and records trigger for focus
// restore. An already open modal is closed first without restoring focus.
// It returns false, changing nothing, when id names no element.
func (c *Controller) Open(id string, trigger *html.Node) bool {
	m := c.doc.ByID(id)
	if m == nil {
		return false
	}
	if c.session.Modal != nil {
		c.close(false)
	}

	c.session = Session{Modal: m, Trigger: trigger}

	if b := c.backdrop(); b != nil {
		dom.AddClass(b, ActiveClass)
		dom.RemoveAttr(b, ariaHidden)
	}
	dom.AddClass(m, ActiveClass)
	dom.RemoveAttr(m, ariaHidden)
	dom.AddClass(c.doc.Body(), BodyOpenClass)

	c.doc.Focus(m)

	if region := c.doc.Wrap(m).Find(ScrollRegion).Get(0); region != nil {
		c.doc.SetScrollTop(region, 0)
	}

	c.active.Set(id)
	return true
}

// Close hides the active modal. With restoreFocus set, focus returns to the
// recorded trigger if it is still in the document. It returns false when no
// modal was open.
func (c *Controller) Close(restoreFocus bool) bool {
	if c.session.Modal == nil {
		return false
	}
	c.close(restoreFocus)
	c.active.Set("")
	return true
}

func (c *Controller) close(restoreFocus bool) {
	m, trigger := c.session.Modal, c.session.Trigger

	dom.RemoveClass(m, ActiveClass)
	dom.SetAttr(m, ariaHidden, "true")
	if b := c.backdrop(); b != nil {
		dom.RemoveClass(b, ActiveClass)
		dom.SetAttr(b, ariaHidden, "true")
	}
	dom.RemoveClass(c.doc.Body(), BodyOpenClass)

	if restoreFocus && trigger != nil {
		c.doc.Focus(trigger)
	}
	c.session = Session{}
}

// HandleEscape closes the active modal and restores focus.
func (c *Controller) HandleEscape() bool {
	return c.Close(true)
}

// HandleTabTrap keeps Tab and Shift+Tab cycling inside the active modal.
// It returns true when it moved focus itself and the default tab action must
// be suppressed; otherwise default traversal should proceed.
func (c *Controller) HandleTabTrap(shift bool) bool {
	if c.session.Modal == nil {
		return false
	}
	focusable := FocusableElements(c.doc.Wrap(c.session.Modal))
	if len(focusable) == 0 {
		return false
	}
	first, last := focusable[0], focusable[len(focusable)-1]
	current := c.doc.ActiveElement()

	switch {
	case shift && current == first:
		c.doc.Focus(last)
	case !shift && current == last:
		c.doc.Focus(first)
	default:
		return false
	}
	return true
}

// IsOpen reports whether a modal is active.
func (c *Controller) IsOpen() bool {
	return c.session.Modal != nil
}

// Session returns a copy of the active session.
func (c *Controller) Session() Session {
	return c.session
}

// ActiveID returns the id of the open modal, or "" when closed.
func (c *Controller) ActiveID() string {
	return c.active.Get()
}

// Active publishes the id of the open modal. A swap publishes only the new
// id.
func (c *Controller) Active() *state.Rune[string] {
	return c.active
}

func (c *Controller) backdrop() *html.Node {
	return c.doc.ByID(BackdropID)
}
