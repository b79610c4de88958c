package folio

import (
	"bytes"
	"errors"
	"log"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/aydenstechdungeon/folio/contact"
	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/fiber"
	"github.com/aydenstechdungeon/folio/page"
	"github.com/aydenstechdungeon/folio/routing"
	"github.com/aydenstechdungeon/folio/store"
	foliotempl "github.com/aydenstechdungeon/folio/templ"
	"github.com/goccy/go-json"
	fiberpkg "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

const (
	// SessionPrefix is where page session endpoints live.
	SessionPrefix = "/_folio/sessions"
	// SessionAttr carries the page session id on the rendered body.
	SessionAttr = "data-folio-session"
)

// Event types the event endpoint accepts besides the dom ones. A tick only
// advances the clock. A focus moves focus to the target.
const (
	eventTick  = "tick"
	eventFocus = "focus"
)

// eventRequest is one browser event posted to a page session.
type eventRequest struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Key    string `json:"key"`
	Shift  bool   `json:"shift"`
	// Value is the field's new content for input events.
	Value   *string `json:"value"`
	Ratio   float64 `json:"ratio"`
	ScrollY int     `json:"scrollY"`
	// ElapsedMs is the time since the previous event of the session.
	ElapsedMs int64 `json:"elapsedMs"`
}

type eventResponse struct {
	DefaultPrevented bool            `json:"defaultPrevented"`
	Focus            string          `json:"focus"`
	State            json.RawMessage `json:"state"`
}

// handlePage loads a page into a new session and renders it.
func (a *App) handlePage(c *fiberpkg.Ctx) error {
	data, name, err := a.Registry.Load(c.Path())
	if errors.Is(err, routing.ErrNotFound) {
		return fiber.NotFound("Page not found: " + c.Path())
	}
	if err != nil {
		return err
	}
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	p := page.New(doc, page.Options{
		Path:           c.Path(),
		Storage:        store.Prefixed(a.storage, "visitor:"+fiber.VisitorID(c)+":"),
		PreferenceTTL:  a.Config.PreferenceTTL,
		SendDelay:      a.Config.SendDelay,
		NoticeDuration: a.Config.NoticeDuration,
		Sender: func(s contact.Submission) {
			log.Printf("folio: contact message from %s <%s>: %s", s.Name, s.Email, s.Subject)
		},
		OnError: func(err error) {
			log.Printf("folio: page %s: %v", name, err)
		},
	})
	fiber.SetState(c, p.State())

	id := uuid.NewString()
	if a.Config.DevMode {
		p.State().OnChange = func(key string, value any) {
			log.Printf("folio: session %s: %s = %v", id, key, value)
		}
	}
	dom.SetAttr(doc.Body(), SessionAttr, id)
	out, err := foliotempl.RenderString(c.UserContext(), foliotempl.Document(doc))
	if err != nil {
		return err
	}
	a.sessions.put(id, p)

	c.Type("html", "utf-8")
	return c.SendString(out)
}

func (a *App) session(c *fiberpkg.Ctx) (*session, error) {
	sess, ok := a.sessions.get(c.Params("id"))
	if !ok {
		return nil, fiber.NotFound("Session not found")
	}
	return sess, nil
}

// handleEvent dispatches one event into a page session.
func (a *App) handleEvent(c *fiberpkg.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.BadRequest("Malformed event")
	}
	if !knownEvent(req.Type) {
		return fiber.BadRequest("Unknown event type").WithDetails(map[string]any{"type": req.Type})
	}
	if req.ElapsedMs < 0 {
		return fiber.ValidationError("elapsedMs", "must not be negative")
	}
	if req.ElapsedMs > a.Config.SessionTTL.Milliseconds() {
		return fiber.ValidationError("elapsedMs", "must not exceed the session lifetime")
	}

	sess, err := a.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	p := sess.page
	fiber.SetState(c, p.State())

	var sel cascadia.Sel
	if req.Target != "" {
		if sel, err = cascadia.Parse(req.Target); err != nil {
			return fiber.ValidationError("target", err.Error())
		}
	}
	p.Doc.Advance(time.Duration(req.ElapsedMs) * time.Millisecond)

	var target *html.Node
	if sel != nil {
		target = cascadia.Query(p.Doc.Root(), sel)
	}
	prevented := dispatch(p, req, target)

	st, err := p.State().MarshalJSON()
	if err != nil {
		return err
	}
	return c.JSON(eventResponse{
		DefaultPrevented: prevented,
		Focus:            dom.Selector(p.Doc.ActiveElement()),
		State:            st,
	})
}

func knownEvent(t string) bool {
	switch dom.EventType(t) {
	case dom.Click, dom.KeyDown, dom.Blur, dom.Input, dom.Submit, dom.Scroll, dom.Intersect:
		return true
	}
	return t == eventTick || t == eventFocus
}

// dispatch applies req to p. Events naming a target that is not in the
// document are dropped, as a browser never fires them.
func dispatch(p *page.Page, req eventRequest, target *html.Node) bool {
	if req.Target != "" && target == nil {
		return false
	}
	switch req.Type {
	case eventTick:
		return false
	case eventFocus:
		p.Doc.Focus(target)
		return false
	case string(dom.Scroll):
		p.Doc.ScrollWindowTo(req.ScrollY)
		return false
	case string(dom.Input):
		if target != nil && req.Value != nil {
			p.Doc.SetValue(target, *req.Value)
		}
	}

	t := dom.EventType(req.Type)
	if target == nil && t != dom.KeyDown {
		return false
	}
	return p.Dispatch(&dom.Event{
		Type:   t,
		Target: target,
		Key:    req.Key,
		Shift:  req.Shift,
		Ratio:  req.Ratio,
	})
}

// handleSessionHTML renders the session's document as it stands.
func (a *App) handleSessionHTML(c *fiberpkg.Ctx) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	out, err := foliotempl.RenderString(c.UserContext(), foliotempl.Document(sess.page.Doc))
	sess.mu.Unlock()
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(out)
}

func (a *App) handleSessionState(c *fiberpkg.Ctx) error {
	sess, err := a.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	st, err := sess.page.State().MarshalJSON()
	sess.mu.Unlock()
	if err != nil {
		return err
	}
	c.Type("json")
	return c.Send(st)
}

// handleEndSession drops a session when the browser navigates away.
func (a *App) handleEndSession(c *fiberpkg.Ctx) error {
	if !a.sessions.remove(c.Params("id")) {
		return fiber.NotFound("Session not found")
	}
	return c.SendStatus(fiberpkg.StatusNoContent)
}
