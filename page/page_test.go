package page

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aydenstechdungeon/folio/component"
	"github.com/aydenstechdungeon/folio/contact"
	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/modal"
	"github.com/aydenstechdungeon/folio/store"
	foliotempl "github.com/aydenstechdungeon/folio/templ"
)

func load(t *testing.T, opts Options) *Page {
	t.Helper()
	html, err := foliotempl.RenderString(context.Background(), component.SamplePortfolio(component.DefaultPortfolio()))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc, err := dom.ParseString(html)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return New(doc, opts)
}

func TestNewWiresEveryFeature(t *testing.T) {
	p := load(t, Options{Path: "/projects.html"})

	if p.Menu == nil || p.Reveal == nil || p.Lazy == nil || p.Contact == nil {
		t.Fatal("Expected every optional feature to be present on the sample page")
	}
	if v, _ := dom.Attr(p.Doc.Root(), "data-theme"); v != "light" {
		t.Errorf("Expected light theme applied, got %q", v)
	}
	active := p.Doc.Find(".nav-links a.active").Nodes
	if len(active) != 1 {
		t.Fatalf("Expected one active nav link, got %d", len(active))
	}
	if href, _ := dom.Attr(active[0], "href"); href != "projects.html" {
		t.Errorf("Expected projects link active, got %s", href)
	}
	if got := dom.Style(p.Doc.ByID("navbar"), "box-shadow"); got != "none" {
		t.Errorf("Expected initial navbar shadow none, got %q", got)
	}
}

func TestContactModalScenario(t *testing.T) {
	p := load(t, Options{})
	doc := p.Doc
	trigger := doc.ByID("open-contact")
	m := doc.ByID("contact-modal")

	p.Dispatch(&dom.Event{Type: dom.Click, Target: trigger})
	if !dom.HasClass(m, modal.ActiveClass) || !dom.HasClass(doc.ByID(modal.BackdropID), modal.ActiveClass) {
		t.Fatal("Expected modal and backdrop visible")
	}
	if !dom.HasClass(doc.Body(), modal.BodyOpenClass) {
		t.Error("Expected body scroll suppressed")
	}
	if !dom.IsWithin(doc.ActiveElement(), m) {
		t.Error("Expected focus inside the modal")
	}

	p.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Escape"})
	if dom.HasClass(m, modal.ActiveClass) || dom.HasClass(doc.ByID(modal.BackdropID), modal.ActiveClass) {
		t.Error("Expected modal and backdrop hidden")
	}
	if dom.HasClass(doc.Body(), modal.BodyOpenClass) {
		t.Error("Expected body scroll restored")
	}
	if doc.ActiveElement() != trigger {
		t.Error("Expected focus back on the trigger")
	}
}

func TestTabCyclesInsideModal(t *testing.T) {
	p := load(t, Options{})
	doc := p.Doc
	p.Dispatch(&dom.Event{Type: dom.Click, Target: doc.ByID("open-contact")})
	m := doc.ByID("contact-modal")
	focusable := modal.FocusableElements(doc.Wrap(m))

	// Starting from the container, walk forward through every element and
	// once more to wrap.
	for i := 0; i <= len(focusable); i++ {
		p.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Tab"})
		want := focusable[i%len(focusable)]
		if doc.ActiveElement() != want {
			t.Fatalf("Step %d: expected %s, got %s", i, dom.Selector(want), dom.Selector(doc.ActiveElement()))
		}
	}

	p.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Tab", Shift: true})
	if doc.ActiveElement() != focusable[len(focusable)-1] {
		t.Error("Expected Shift+Tab on the first element to wrap to the last")
	}
}

func TestTabWithoutModal(t *testing.T) {
	p := load(t, Options{})
	if p.Dispatch(&dom.Event{Type: dom.KeyDown, Key: "Tab"}) {
		t.Error("Expected Tab without a modal to proceed by default")
	}
	first := modal.FocusableElements(p.Doc.Wrap(p.Doc.Body()))[0]
	if p.Doc.ActiveElement() != first {
		t.Errorf("Expected focus on the first focusable element, got %s", dom.Selector(p.Doc.ActiveElement()))
	}
}

func TestState(t *testing.T) {
	p := load(t, Options{})
	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID("open-post-links")})
	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID("theme-toggle")})
	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID("menu-toggle")})

	got, err := p.State().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	want := `{"activeModal":"post-links","menuOpen":true,"modalOpen":true,"theme":"dark"}`
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID(modal.BackdropID)})
	if v := p.State().ToMap()["modalOpen"]; v != false {
		t.Errorf("Expected modalOpen false after backdrop click, got %v", v)
	}
}

func TestThemePersistsAcrossPages(t *testing.T) {
	s := store.NewMemoryStorage()
	p := load(t, Options{Storage: s})
	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID("theme-toggle")})

	next := load(t, Options{Storage: s})
	if v, _ := dom.Attr(next.Doc.Root(), "data-theme"); v != "dark" {
		t.Errorf("Expected the stored dark theme on the next page, got %q", v)
	}
}

type brokenStorage struct{}

func (brokenStorage) Get(string) ([]byte, error) { return nil, errors.New("down") }
func (brokenStorage) Set(string, []byte, time.Duration) error { return errors.New("down") }
func (brokenStorage) Delete(string) error { return nil }

func TestStorageErrorsAreReported(t *testing.T) {
	var errs []error
	p := load(t, Options{Storage: brokenStorage{}, OnError: func(err error) { errs = append(errs, err) }})
	if len(errs) != 1 {
		t.Fatalf("Expected the init failure reported once, got %d", len(errs))
	}
	p.Dispatch(&dom.Event{Type: dom.Click, Target: p.Doc.ByID("theme-toggle")})
	if len(errs) != 2 {
		t.Errorf("Expected the toggle failure reported, got %d", len(errs))
	}
	if v, _ := dom.Attr(p.Doc.Root(), "data-theme"); v != "dark" {
		t.Errorf("Expected the page to switch theme anyway, got %q", v)
	}
}

func TestContactSubmitFlow(t *testing.T) {
	var sent []contact.Submission
	p := load(t, Options{SendDelay: 50 * time.Millisecond, Sender: func(s contact.Submission) { sent = append(sent, s) }})
	doc := p.Doc
	values := map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Project",
		"message": "Let us build something together.",
	}
	for key, v := range values {
		doc.SetValue(doc.ByID(key), v)
	}

	if !p.Dispatch(&dom.Event{Type: dom.Submit, Target: doc.ByID(contact.FormID)}) {
		t.Error("Expected submit default to be prevented")
	}
	doc.Advance(50 * time.Millisecond)
	if len(sent) != 1 || sent[0].Name != "Ada" {
		t.Errorf("Expected one submission from Ada, got %+v", sent)
	}
	if !strings.Contains(doc.String(), `id="form-success" class="form-success visible"`) {
		t.Error("Expected the success notice visible")
	}
}

func TestFilterAndReveal(t *testing.T) {
	p := load(t, Options{})
	doc := p.Doc

	dataBtn := doc.Find(`.filter-btn[data-filter="data"]`).Get(0)
	p.Dispatch(&dom.Event{Type: dom.Click, Target: dataBtn})
	if n := doc.Find(`.project-card[data-hidden="false"]`).Length(); n != 1 {
		t.Errorf("Expected one data project shown, got %d", n)
	}

	section := doc.ByID("projects")
	p.Dispatch(&dom.Event{Type: dom.Intersect, Target: section, Ratio: 0.5})
	if !dom.HasClass(section, "visible") {
		t.Error("Expected section revealed")
	}
}
