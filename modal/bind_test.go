package modal

import (
	"testing"

	"github.com/aydenstechdungeon/folio/dom"
)

func bound(t *testing.T) (*dom.Document, *Controller) {
	t.Helper()
	doc, c := setup(t)
	Bind(doc, c)
	return doc, c
}

func TestBindTriggerClick(t *testing.T) {
	doc, c := bound(t)
	trigger := doc.ByID("open-contact")

	doc.Dispatch(&dom.Event{Type: dom.Click, Target: trigger})
	if c.ActiveID() != "contact-modal" {
		t.Fatalf("Expected contact-modal open, got %q", c.ActiveID())
	}
	if c.Session().Trigger != trigger {
		t.Error("Expected the clicked trigger to be recorded")
	}
}

func TestBindCloseControl(t *testing.T) {
	doc, c := bound(t)
	trigger := doc.ByID("open-contact")
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: trigger})

	// Clicking the icon inside the close button still closes.
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID("close-icon")})
	if c.IsOpen() {
		t.Fatal("Expected close control to close the modal")
	}
	if doc.ActiveElement() != trigger {
		t.Error("Expected focus back on the trigger")
	}
}

func TestBindBackdropClick(t *testing.T) {
	doc, c := bound(t)
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID("open-post")})
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID(BackdropID)})
	if c.IsOpen() {
		t.Error("Expected backdrop click to close the modal")
	}
}

func TestBindClickInsideModalKeepsItOpen(t *testing.T) {
	doc, c := bound(t)
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID("open-contact")})
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID("contact-input")})
	if !c.IsOpen() {
		t.Error("Expected a click inside the modal to leave it open")
	}
}

func TestBindKeyboard(t *testing.T) {
	doc, c := bound(t)
	trigger := doc.ByID("open-contact")
	doc.Dispatch(&dom.Event{Type: dom.Click, Target: trigger})

	doc.Focus(doc.ByID("contact-input"))
	ev := &dom.Event{Type: dom.KeyDown, Key: "Tab"}
	if !doc.Dispatch(ev) {
		t.Error("Expected Tab on the last element to be suppressed")
	}
	if doc.ActiveElement() != doc.ByID("contact-close") {
		t.Error("Expected focus to wrap to the first element")
	}

	if doc.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Tab"}) {
		t.Error("Expected Tab on the first element to proceed by default")
	}

	doc.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Escape"})
	if c.IsOpen() || doc.ActiveElement() != trigger {
		t.Error("Expected Escape to close and restore focus")
	}

	if doc.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Escape"}) {
		t.Error("Expected Escape while closed to do nothing")
	}
}

// Scenario: open the contact modal from its trigger, then press Escape.
func TestContactModalScenario(t *testing.T) {
	doc, _ := bound(t)
	trigger := doc.ByID("open-contact")
	m, backdrop, body := doc.ByID("contact-modal"), doc.ByID(BackdropID), doc.Body()

	doc.Dispatch(&dom.Event{Type: dom.Click, Target: trigger})
	if !isVisible(m) || !isVisible(backdrop) || !dom.HasClass(body, BodyOpenClass) {
		t.Fatal("Expected modal, backdrop and scroll lock after opening")
	}
	if !dom.IsWithin(doc.ActiveElement(), m) {
		t.Fatal("Expected focus inside the modal")
	}

	doc.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Escape"})
	if isVisible(m) || isVisible(backdrop) || dom.HasClass(body, BodyOpenClass) {
		t.Error("Expected modal, backdrop and scroll lock cleared after Escape")
	}
	if doc.ActiveElement() != trigger {
		t.Error("Expected focus back on the trigger button")
	}
}
