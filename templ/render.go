// Package templ provides rendering helpers for folio pages.
package templ

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/folio/dom"
)

// CSS returns a link tag for a stylesheet.
func CSS(href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`, templ.EscapeString(href))
		return err
	})
}

// CSSInline returns an inline style tag. css is written as is.
func CSSInline(css string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<style>%s</style>`, css)
		return err
	})
}

// Meta returns a meta tag.
func Meta(name, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<meta name="%s" content="%s">`, templ.EscapeString(name), templ.EscapeString(content))
		return err
	})
}

// Title returns a title tag.
func Title(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<title>%s</title>`, templ.EscapeString(title))
		return err
	})
}

// Favicon returns a link tag for a favicon.
func Favicon(href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<link rel="icon" href="%s">`, templ.EscapeString(href))
		return err
	})
}

// Head renders components one after another.
func Head(components ...templ.Component) templ.Component {
	return Fragment(components...)
}

// HTMLPage returns a complete HTML page. The theme attribute starts at
// light and is replaced once the stored preference is applied.
func HTMLPage(lang string, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="%s" data-theme="light">`, templ.EscapeString(lang)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`); err != nil {
			return err
		}
		if head != nil {
			if err := head.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Document renders the current state of a live document.
func Document(doc *dom.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if doc == nil {
			return nil
		}
		if !doc.HasDoctype() {
			if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
				return err
			}
		}
		return doc.Render(w)
	})
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
