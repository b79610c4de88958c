// Package theme applies and persists the light/dark colour scheme.
package theme

import (
	"errors"
	"fmt"
	"time"

	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/state"
	"github.com/aydenstechdungeon/folio/store"
)

// PreferenceKey is the storage key holding the chosen theme.
const PreferenceKey = "portfolio-theme"

// ToggleID is the id of the theme switch button.
const ToggleID = "theme-toggle"

// Attr is the attribute on <html> the stylesheet keys off.
const Attr = "data-theme"

// Theme is a colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse maps a stored value to a Theme. Anything other than "dark" is light.
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Label is the accessible name of the toggle while t is applied.
func (t Theme) Label() string {
	if t == Dark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

// Icon is the toggle's text while t is applied.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// Manager applies the theme to one document and persists the preference.
type Manager struct {
	doc     *dom.Document
	storage store.Storage
	ttl     time.Duration
	current *state.Rune[Theme]
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL makes the stored preference expire ttl after it was last saved.
// Without it the preference never expires.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// New creates a Manager. A nil storage keeps the preference in memory.
func New(doc *dom.Document, storage store.Storage, opts ...Option) *Manager {
	if storage == nil {
		storage = store.NewMemoryStorage()
	}
	m := &Manager{
		doc:     doc,
		storage: storage,
		current: state.NewRune(Light),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Stored returns the persisted theme, Light when nothing is stored.
func (m *Manager) Stored() (Theme, error) {
	raw, err := m.storage.Get(PreferenceKey)
	if errors.Is(err, store.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, fmt.Errorf("read theme preference: %w", err)
	}
	return Parse(string(raw)), nil
}

// Init applies the stored theme. A storage failure still applies Light and
// is returned.
func (m *Manager) Init() error {
	t, readErr := m.Stored()
	if err := m.Set(t); err != nil {
		return err
	}
	return readErr
}

// Set applies t to the document and the toggle, then persists it. The
// document is updated even when persisting fails.
func (m *Manager) Set(t Theme) error {
	t = Parse(string(t))
	if root := m.doc.Root(); root != nil {
		dom.SetAttr(root, Attr, string(t))
	}
	if btn := m.doc.ByID(ToggleID); btn != nil {
		dom.SetAttr(btn, "aria-label", t.Label())
		dom.SetText(btn, t.Icon())
	}
	m.current.Set(t)

	if err := m.storage.Set(PreferenceKey, []byte(t), m.ttl); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}

// Current returns the theme applied to the document.
func (m *Manager) Current() Theme {
	v, _ := dom.Attr(m.doc.Root(), Attr)
	return Parse(v)
}

// Toggle switches to the opposite of the applied theme.
func (m *Manager) Toggle() error {
	return m.Set(m.Current().Opposite())
}

// State publishes the applied theme.
func (m *Manager) State() *state.Rune[Theme] {
	return m.current
}

// Bind wires clicks on the toggle button. Persistence failures go to onErr
// when it is non-nil.
func Bind(doc *dom.Document, m *Manager, onErr func(error)) {
	btn := doc.ByID(ToggleID)
	if btn == nil {
		return
	}
	doc.AddEventListener(dom.Click, func(ev *dom.Event) {
		if !dom.IsWithin(ev.Target, btn) {
			return
		}
		if err := m.Toggle(); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
