package contact

import (
	"time"

	"github.com/aydenstechdungeon/folio/dom"
	"golang.org/x/net/html"
)

const (
	FormID    = "contact-form"
	SuccessID = "form-success"

	DefaultSendDelay      = 1200 * time.Millisecond
	DefaultNoticeDuration = 5000 * time.Millisecond

	sendingLabel = "Sending…"
	idleLabel    = "Send Message"
)

// Form drives the contact form of one document. It is not safe for
// concurrent use.
type Form struct {
	doc            *dom.Document
	form           *html.Node
	sendDelay      time.Duration
	noticeDuration time.Duration
	sender         func(Submission)
	sending        bool
}

// Option configures a Form.
type Option func(*Form)

// WithSendDelay sets how long the simulated send takes.
func WithSendDelay(d time.Duration) Option {
	return func(f *Form) {
		if d >= 0 {
			f.sendDelay = d
		}
	}
}

// WithNoticeDuration sets how long the success notice stays visible.
func WithNoticeDuration(d time.Duration) Option {
	return func(f *Form) {
		if d >= 0 {
			f.noticeDuration = d
		}
	}
}

// WithSender registers a hook that receives each submission once the
// simulated send completes.
func WithSender(fn func(Submission)) Option {
	return func(f *Form) {
		f.sender = fn
	}
}

// New returns nil when doc has no contact form.
func New(doc *dom.Document, opts ...Option) *Form {
	form := doc.ByID(FormID)
	if form == nil {
		return nil
	}
	f := &Form{
		doc:            doc,
		form:           form,
		sendDelay:      DefaultSendDelay,
		noticeDuration: DefaultNoticeDuration,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Field returns the input for key, or nil when the form lacks it.
func (f *Form) Field(key string) *html.Node {
	return f.doc.Wrap(f.form).Find("#" + key).Get(0)
}

func (f *Form) fieldKey(n *html.Node) (string, bool) {
	for _, key := range Fields {
		if n != nil && f.Field(key) == n {
			return key, true
		}
	}
	return "", false
}

// ValidateField checks one field and shows or hides its error state. A
// missing field is valid.
func (f *Form) ValidateField(key string) bool {
	el := f.Field(key)
	if el == nil {
		return true
	}
	valid := ValidValue(key, f.doc.Value(el))
	dom.ToggleClass(el, "error", !valid)
	if msg := f.doc.ByID(key + "-error"); msg != nil {
		dom.ToggleClass(msg, "visible", !valid)
	}
	return valid
}

// ValidateAll checks every field, including those after the first failure.
func (f *Form) ValidateAll() bool {
	ok := true
	for _, key := range Fields {
		if !f.ValidateField(key) {
			ok = false
		}
	}
	return ok
}

// Submission reads the current field values.
func (f *Form) Submission() Submission {
	value := func(key string) string {
		return trim(f.doc.Value(f.Field(key)))
	}
	return Submission{
		Name:    value("name"),
		Email:   value("email"),
		Subject: value("subject"),
		Message: value("message"),
	}
}

// Sending reports whether a simulated send is in flight.
func (f *Form) Sending() bool {
	return f.sending
}

// Submit validates the form and, when valid, starts the simulated send on
// the document clock. It returns false when the form is invalid or a send
// is already in flight.
func (f *Form) Submit() bool {
	if f.sending {
		return false
	}
	if !f.ValidateAll() {
		return false
	}

	sub := f.Submission()
	btn := f.doc.Wrap(f.form).Find(".form-submit").Get(0)
	if btn != nil {
		dom.SetText(btn, sendingLabel)
		dom.SetAttr(btn, "disabled", "")
	}
	f.sending = true

	f.doc.SetTimeout(f.sendDelay, func() {
		f.sending = false
		f.doc.ResetForm(f.form)
		if btn != nil {
			dom.SetText(btn, idleLabel)
			dom.RemoveAttr(btn, "disabled")
		}
		if f.sender != nil {
			f.sender(sub)
		}
		if notice := f.doc.ByID(SuccessID); notice != nil {
			dom.AddClass(notice, "visible")
			f.doc.SetTimeout(f.noticeDuration, func() {
				dom.RemoveClass(notice, "visible")
			})
		}
	})
	return true
}

// Bind wires blur, input and submit events for f. f may be nil.
func Bind(doc *dom.Document, f *Form) {
	if f == nil {
		return
	}
	doc.AddEventListener(dom.Blur, func(ev *dom.Event) {
		if key, ok := f.fieldKey(ev.Target); ok {
			f.ValidateField(key)
		}
	})
	doc.AddEventListener(dom.Input, func(ev *dom.Event) {
		if key, ok := f.fieldKey(ev.Target); ok && dom.HasClass(ev.Target, "error") {
			f.ValidateField(key)
		}
	})
	doc.AddEventListener(dom.Submit, func(ev *dom.Event) {
		if !dom.IsWithin(ev.Target, f.form) {
			return
		}
		ev.PreventDefault()
		f.Submit()
	})
}
