// Package fiber holds the HTTP middleware and error handling used by the
// folio host.
package fiber

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/aydenstechdungeon/folio/state"
	gofiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// StateKey is the Locals key for the *state.StateMap of the page a
	// request acts on.
	StateKey = "folio.state"
	// VisitorKey is the Locals key for the visitor id.
	VisitorKey = "folio.visitor"

	// VisitorCookie identifies a browser across page loads.
	VisitorCookie = "folio_visitor"
	// CSRFCookie carries the token mutating requests must echo.
	CSRFCookie = "csrf_token"
	// CSRFHeader is the header mutating requests echo the token in.
	CSRFHeader = "X-CSRF-Token"
)

// SecurityHeadersMiddleware adds security headers.
func SecurityHeadersMiddleware() gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// VisitorMiddleware assigns every browser a stable visitor id, kept in a
// cookie for maxAge, and stores it in Locals.
func VisitorMiddleware(maxAge time.Duration) gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		id := c.Cookies(VisitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&gofiber.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HTTPOnly: true,
				SameSite: "Lax",
				Secure:   c.Protocol() == "https",
			})
		}
		c.Locals(VisitorKey, id)
		return c.Next()
	}
}

// VisitorID returns the visitor id set by VisitorMiddleware.
func VisitorID(c *gofiber.Ctx) string {
	if id, ok := c.Locals(VisitorKey).(string); ok {
		return id
	}
	return ""
}

// CSRFSetTokenMiddleware issues the CSRF cookie on safe HTTP methods.
// Use this alongside CSRFTokenMiddleware: the setter runs on GETs to plant the token,
// the validator runs on mutating methods to verify it.
func CSRFSetTokenMiddleware() gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		if c.Method() != gofiber.MethodGet && c.Method() != gofiber.MethodHead {
			return c.Next()
		}
		if c.Cookies(CSRFCookie) == "" {
			token, err := generateCSRFToken()
			if err != nil {
				// Non-critical: skip token issuance, don't block the request
				return c.Next()
			}
			c.Cookie(&gofiber.Cookie{
				Name:     CSRFCookie,
				Value:    token,
				Path:     "/",
				HTTPOnly: false, // Must be readable by JS to set the X-CSRF-Token header
				SameSite: "Strict",
				Secure:   c.Protocol() == "https",
			})
		}
		return c.Next()
	}
}

func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CSRFTokenMiddleware rejects mutating requests whose CSRF header does not
// match the cookie.
func CSRFTokenMiddleware() gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		switch c.Method() {
		case gofiber.MethodGet, gofiber.MethodHead, gofiber.MethodOptions:
			return c.Next()
		}
		token := c.Get(CSRFHeader)
		cookie := c.Cookies(CSRFCookie)
		if token == "" || cookie == "" || token != cookie {
			return NewAppError(ErrorCodeForbidden, "CSRF token mismatch", gofiber.StatusForbidden)
		}
		return c.Next()
	}
}

// SetState exposes the state of the page a request acts on to the error
// handler.
func SetState(c *gofiber.Ctx, sm *state.StateMap) {
	c.Locals(StateKey, sm)
}

