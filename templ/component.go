package templ

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorBoundary renders content, or fallback when content fails. Nothing
// from a failed render reaches w.
func ErrorBoundary(content templ.Component, fallback func(error) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		err := content.Render(ctx, &buf)
		if err != nil {
			if fallback != nil {
				return fallback(err).Render(ctx, w)
			}
			return err
		}
		_, writeErr := io.Copy(w, &buf)
		return writeErr
	})
}

// Fragment renders components in order, skipping nil entries.
func Fragment(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Text renders s escaped.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Raw renders s without escaping. Callers must only pass trusted markup.
func Raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}
