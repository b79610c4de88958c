// Package component renders the markup the page controllers expect: modal
// triggers, modals, the backdrop, navigation, project cards and the contact
// form.
package component

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	foliotempl "github.com/aydenstechdungeon/folio/templ"
)

// Markup is anything renderable into a page.
type Markup = templ.Component

var esc = templ.EscapeString

func classes(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return esc(strings.Join(out, " "))
}

// Backdrop renders the shared modal backdrop.
func Backdrop() Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="modal-backdrop" class="modal-backdrop" aria-hidden="true"></div>`)
		return err
	})
}

// Trigger renders a button that opens a modal.
func Trigger(p TriggerProps) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := ""
		if p.ID != "" {
			id = fmt.Sprintf(` id="%s"`, esc(p.ID))
		}
		_, err := fmt.Fprintf(w, `<button type="button"%s class="%s" data-modal="%s">%s</button>`,
			id, classes("btn", p.Class), esc(p.ModalID), esc(p.Label))
		return err
	})
}

// CloseButton renders a control that closes the active modal.
func CloseButton() Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<button type="button" class="modal-close" data-close aria-label="Close">×</button>`)
		return err
	})
}

// Modal renders a hidden dialog. It carries tabindex="-1" so it can take
// focus when opened without joining the tab order.
func Modal(p ModalProps) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		size := p.Size
		if size == "" {
			size = SizeMedium
		}
		titleID := p.ID + "-title"
		if _, err := fmt.Fprintf(w,
			`<div id="%s" class="%s" role="dialog" aria-modal="true" aria-labelledby="%s" tabindex="-1" aria-hidden="true">`,
			esc(p.ID), classes("modal", "modal-"+string(size), p.Class), esc(titleID)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<div class="modal-header"><h2 id="%s" class="modal-title">%s</h2>`, esc(titleID), esc(p.Title)); err != nil {
			return err
		}
		if err := CloseButton().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div><div class="modal-body">`); err != nil {
			return err
		}
		if p.Body != nil {
			if err := p.Body.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if p.Footer != nil {
			if _, err := io.WriteString(w, `<div class="modal-footer">`); err != nil {
				return err
			}
			if err := p.Footer.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</div>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ThemeToggle renders the light/dark switch in its light-theme state.
func ThemeToggle() Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<button type="button" id="theme-toggle" class="theme-toggle" aria-label="Switch to dark mode">🌙</button>`)
		return err
	})
}

// Navbar renders the navigation bar with the mobile menu toggle.
func Navbar(brand string, links []NavLink) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<nav id="navbar" class="navbar"><a class="nav-brand" href="index.html">%s</a><ul class="nav-links">`, esc(brand)); err != nil {
			return err
		}
		for _, l := range links {
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, esc(l.Href), esc(l.Label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}
		if err := ThemeToggle().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="button" id="menu-toggle" class="menu-toggle" aria-label="Open menu" aria-expanded="false"><span></span><span></span><span></span></button></nav>`)
		return err
	})
}

// ScrollTopButton renders the back-to-top button.
func ScrollTopButton() Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<button type="button" id="scroll-top" class="scroll-top" aria-label="Back to top">↑</button>`)
		return err
	})
}

// FilterBar renders the project filter buttons. The first one starts
// active.
func FilterBar(filters []Filter) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="filters">`); err != nil {
			return err
		}
		for i, f := range filters {
			active := ""
			if i == 0 {
				active = "active"
			}
			if _, err := fmt.Fprintf(w, `<button type="button" class="%s" data-filter="%s">%s</button>`,
				classes("filter-btn", active), esc(f.Value), esc(f.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ProjectCard renders one project. Its image loads lazily.
func ProjectCard(p Project) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<article class="project-card reveal" data-type="%s" data-hidden="false"><img loading="lazy" src="/static/img/placeholder.svg" data-src="%s" alt="%s"><h3>%s</h3><p>%s</p>`,
			esc(p.Type), esc(p.Image), esc(p.Title), esc(p.Title), esc(p.Summary)); err != nil {
			return err
		}
		if p.PostID != "" {
			if err := Trigger(TriggerProps{ModalID: p.PostID, Label: "Read more", Class: "btn-link"}).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

type formField struct {
	key, label, kind, message string
}

var contactFields = []formField{
	{"name", "Name", "text", "Please enter at least 2 characters."},
	{"email", "Email", "email", "Please enter a valid email address."},
	{"subject", "Subject", "text", "Please enter at least 3 characters."},
	{"message", "Message", "textarea", "Please enter at least 15 characters."},
}

// ContactForm renders the contact form with its error messages and success
// notice.
func ContactForm() Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form id="contact-form" class="contact-form" novalidate>`); err != nil {
			return err
		}
		for _, f := range contactFields {
			control := fmt.Sprintf(`<input id="%s" name="%s" type="%s">`, f.key, f.key, f.kind)
			if f.kind == "textarea" {
				control = fmt.Sprintf(`<textarea id="%s" name="%s" rows="5"></textarea>`, f.key, f.key)
			}
			if _, err := fmt.Fprintf(w,
				`<div class="form-group"><label for="%s">%s</label>%s<span id="%s-error" class="form-error">%s</span></div>`,
				f.key, f.label, control, f.key, f.message); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="submit" class="btn form-submit">Send Message</button><div id="form-success" class="form-success" role="status">Thanks! Your message has been sent.</div></form>`)
		return err
	})
}

func paragraphs(lines []string) Markup {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, esc(l)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SamplePortfolio renders a complete portfolio page exercising every page
// feature.
func SamplePortfolio(p PortfolioProps) Markup {
	head := foliotempl.Head(
		foliotempl.Title(p.Name),
		foliotempl.Meta("description", p.Tagline),
		foliotempl.Favicon(p.Favicon),
		foliotempl.CSS(p.Stylesheet),
	)

	var cards, posts []Markup
	for _, pr := range p.Projects {
		cards = append(cards, ProjectCard(pr))
	}
	for _, post := range p.Posts {
		posts = append(posts, Modal(ModalProps{
			ID:    post.ID,
			Title: post.Title,
			Size:  SizeLarge,
			Body: foliotempl.Fragment(
				foliotempl.Raw(fmt.Sprintf(`<time>%s</time>`, esc(post.Date))),
				paragraphs(post.Body),
			),
		}))
	}

	var postTriggers []Markup
	for _, post := range p.Posts {
		postTriggers = append(postTriggers,
			foliotempl.Raw(`<li>`),
			Trigger(TriggerProps{ID: "open-" + post.ID, ModalID: post.ID, Label: post.Title, Class: "btn-link"}),
			foliotempl.Raw(`</li>`))
	}

	body := foliotempl.Fragment(
		Navbar(p.Name, p.Links),
		foliotempl.Raw(fmt.Sprintf(`<header class="hero reveal"><h1>%s</h1><p>%s</p>`, esc(p.Name), esc(p.Tagline))),
		Trigger(TriggerProps{ID: "open-contact", ModalID: "contact-modal", Label: "Get in touch"}),
		foliotempl.Raw(`</header><main><section id="projects" class="reveal"><h2>Projects</h2>`),
		FilterBar(p.Filters),
		foliotempl.Raw(`<div class="project-grid">`),
		foliotempl.Fragment(cards...),
		foliotempl.Raw(`</div></section><section id="blog" class="reveal"><h2>Writing</h2><ul class="post-list">`),
		foliotempl.Fragment(postTriggers...),
		foliotempl.Raw(`</ul></section></main>`),
		Backdrop(),
		Modal(ModalProps{ID: "contact-modal", Title: "Contact me", Body: ContactForm()}),
		foliotempl.Fragment(posts...),
		ScrollTopButton(),
	)
	return foliotempl.HTMLPage("en", head, body)
}
