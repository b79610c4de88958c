// Package page assembles every interactive feature onto one document, in
// the order a browser would run the page's scripts.
package page

import (
	"time"

	"github.com/aydenstechdungeon/folio/contact"
	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/filter"
	"github.com/aydenstechdungeon/folio/modal"
	"github.com/aydenstechdungeon/folio/nav"
	"github.com/aydenstechdungeon/folio/observe"
	"github.com/aydenstechdungeon/folio/state"
	"github.com/aydenstechdungeon/folio/store"
	"github.com/aydenstechdungeon/folio/theme"
)

// Options configures a Page.
type Options struct {
	// Path is the document location, used for nav highlighting.
	Path string
	// Storage holds the theme preference. Nil keeps it in memory.
	Storage store.Storage
	// PreferenceTTL, when positive, expires the stored preference that long
	// after it was last saved.
	PreferenceTTL time.Duration
	// SendDelay and NoticeDuration override the contact form timings when
	// positive.
	SendDelay      time.Duration
	NoticeDuration time.Duration
	// Sender receives completed contact submissions.
	Sender func(contact.Submission)
	// OnError receives failures that the page otherwise tolerates, such as
	// an unavailable preference store.
	OnError func(error)
}

// Page is one loaded document with its features wired up. Like the
// document, it is not safe for concurrent use.
type Page struct {
	Doc     *dom.Document
	Modal   *modal.Controller
	Theme   *theme.Manager
	Menu    *nav.Menu
	Reveal  *observe.Observer
	Lazy    *observe.Observer
	Contact *contact.Form

	state *state.StateMap
}

// New wires every feature onto doc.
func New(doc *dom.Document, opts Options) *Page {
	if opts.Path != "" {
		doc.SetPath(opts.Path)
	}
	p := &Page{Doc: doc}

	var themeOpts []theme.Option
	if opts.PreferenceTTL > 0 {
		themeOpts = append(themeOpts, theme.WithTTL(opts.PreferenceTTL))
	}
	p.Theme = theme.New(doc, opts.Storage, themeOpts...)
	if err := p.Theme.Init(); err != nil {
		p.report(opts.OnError, err)
	}
	theme.Bind(doc, p.Theme, opts.OnError)

	p.Menu = nav.NewMenu(doc)
	nav.HighlightActive(doc, doc.Path())
	nav.Bind(doc, p.Menu)

	p.Reveal = observe.Reveal(doc)
	filter.Bind(doc)

	var formOpts []contact.Option
	if opts.SendDelay > 0 {
		formOpts = append(formOpts, contact.WithSendDelay(opts.SendDelay))
	}
	if opts.NoticeDuration > 0 {
		formOpts = append(formOpts, contact.WithNoticeDuration(opts.NoticeDuration))
	}
	if opts.Sender != nil {
		formOpts = append(formOpts, contact.WithSender(opts.Sender))
	}
	p.Contact = contact.New(doc, formOpts...)
	contact.Bind(doc, p.Contact)

	p.Lazy = observe.LazyImages(doc)
	nav.ApplyScroll(doc)

	p.Modal = modal.New(doc)
	modal.Bind(doc, p.Modal)

	p.state = p.buildState()
	return p
}

func (p *Page) report(onErr func(error), err error) {
	if onErr != nil {
		onErr(err)
	}
}

func (p *Page) buildState() *state.StateMap {
	active := p.Modal.Active()
	sm := state.NewStateMap().
		Add("activeModal", active).
		Add("modalOpen", state.DerivedFrom(func() bool { return active.Get() != "" }, active)).
		Add("theme", p.Theme.State())
	if p.Menu != nil {
		sm.Add("menuOpen", p.Menu.State())
	} else {
		sm.Add("menuOpen", state.NewRune(false))
	}
	return sm
}

// State returns the page's observable state: activeModal, modalOpen, theme
// and menuOpen.
func (p *Page) State() *state.StateMap {
	return p.state
}

// Dispatch delivers ev and then performs the default action a browser
// would take for it, unless a listener prevented it. It reports whether
// the default was prevented.
func (p *Page) Dispatch(ev *dom.Event) bool {
	prevented := p.Doc.Dispatch(ev)
	if prevented {
		return true
	}
	if ev.Type == dom.KeyDown && ev.Key == "Tab" {
		p.tabDefault(ev.Shift)
	}
	return false
}

// tabDefault moves focus the way sequential focus navigation does: within
// the open modal's scope when there is one, the whole body otherwise.
func (p *Page) tabDefault(backward bool) {
	scope := p.Doc.Body()
	if s := p.Modal.Session(); s.Modal != nil {
		scope = s.Modal
	}
	candidates := modal.FocusableElements(p.Doc.Wrap(scope))
	if next := p.Doc.NextFocus(candidates, p.Doc.ActiveElement(), backward); next != nil {
		p.Doc.Focus(next)
	}
}
