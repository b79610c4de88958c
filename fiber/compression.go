package fiber

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	gofiber "github.com/gofiber/fiber/v2"
)

// CompressionConfig configures response compression.
type CompressionConfig struct {
	// EnableBrotli enables Brotli, preferred when the client accepts it.
	EnableBrotli bool
	// EnableGzip enables Gzip as the fallback.
	EnableGzip bool
	// BrotliLevel is clamped to 0-11.
	BrotliLevel int
	// GzipLevel is clamped to 1-9.
	GzipLevel int
	// MinSize is the smallest body worth compressing. Event responses are
	// usually below it.
	MinSize int
	// Types are the content types compressed, matched by prefix.
	Types []string
	// SkipPaths are path prefixes never compressed
	SkipPaths []string
}

// DefaultCompressionConfig returns default compression configuration.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		EnableBrotli: true,
		EnableGzip:   true,
		BrotliLevel:  4,
		GzipLevel:    6,
		MinSize:      1024,
		Types: []string{
			gofiber.MIMETextHTML,
			"text/css",
			gofiber.MIMETextPlain,
			gofiber.MIMEApplicationJSON,
			"image/svg+xml",
		},
	}
}

type resetWriter interface {
	io.WriteCloser
	Reset(io.Writer)
}

// encoder is one content coding with its pooled writers.
type encoder struct {
	name string
	pool sync.Pool
}

func newEncoder(name string, fn func() resetWriter) *encoder {
	return &encoder{name: name, pool: sync.Pool{New: func() any { return fn() }}}
}

// encode returns data compressed, or nil when that fails.
func (e *encoder) encode(data []byte) []byte {
	w := e.pool.Get().(resetWriter)
	defer e.pool.Put(w)

	var buf bytes.Buffer
	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return nil
	}
	if err := w.Close(); err != nil {
		return nil
	}
	return buf.Bytes()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// BrotliGzipMiddleware compresses eligible responses with Brotli or Gzip,
// whichever the client accepts first in that order. A response is left
// alone when it is small, of another type, already encoded, or would not
// shrink.
func BrotliGzipMiddleware(config CompressionConfig) gofiber.Handler {
	var encoders []*encoder
	if config.EnableBrotli {
		level := clamp(config.BrotliLevel, 0, 11)
		encoders = append(encoders, newEncoder("br", func() resetWriter {
			return brotli.NewWriterLevel(nil, level)
		}))
	}
	if config.EnableGzip {
		level := clamp(config.GzipLevel, 1, 9)
		encoders = append(encoders, newEncoder("gzip", func() resetWriter {
			w, _ := gzip.NewWriterLevel(nil, level)
			return w
		}))
	}

	negotiate := func(accept string) *encoder {
		accept = strings.ToLower(accept)
		for _, e := range encoders {
			if strings.Contains(accept, e.name) {
				return e
			}
		}
		return nil
	}
	eligible := func(contentType string) bool {
		for _, t := range config.Types {
			if strings.HasPrefix(contentType, t) {
				return true
			}
		}
		return false
	}

	return func(c *gofiber.Ctx) error {
		for _, prefix := range config.SkipPaths {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}
		enc := negotiate(c.Get(gofiber.HeaderAcceptEncoding))
		if enc == nil {
			return c.Next()
		}
		if err := c.Next(); err != nil {
			return err
		}

		resp := c.Response()
		body := resp.Body()
		if len(body) < config.MinSize ||
			!eligible(string(resp.Header.ContentType())) ||
			len(resp.Header.Peek(gofiber.HeaderContentEncoding)) > 0 {
			return nil
		}

		out := enc.encode(body)
		if len(out) == 0 || len(out) >= len(body) {
			return nil
		}
		c.Set(gofiber.HeaderContentEncoding, enc.name)
		c.Vary(gofiber.HeaderAcceptEncoding)
		resp.SetBody(out)
		return nil
	}
}
