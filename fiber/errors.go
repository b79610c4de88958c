package fiber

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/folio/state"
	foliotempl "github.com/aydenstechdungeon/folio/templ"
	"github.com/goccy/go-json"
	gofiber "github.com/gofiber/fiber/v2"
)

// ErrorCode represents an error code.
type ErrorCode string

const (
	ErrorCodeInternal    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrorCodeBadRequest  ErrorCode = "BAD_REQUEST"
	ErrorCodeForbidden   ErrorCode = "FORBIDDEN"
	ErrorCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrorCodeTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrorCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError represents an application error.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Stack      string         `json:"stack,omitempty"`
	StatusCode int            `json:"-"`

	cause error
}

// Error implements the error interface. The cause, which clients never
// see, is included.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates a new application error.
func NewAppError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// WithStack adds a stack trace to the error.
func (e *AppError) WithStack(stack string) *AppError {
	e.Stack = stack
	return e
}

// NotFound creates a 404 error.
func NotFound(message string) *AppError {
	return NewAppError(ErrorCodeNotFound, message, gofiber.StatusNotFound)
}

// BadRequest creates a 400 error.
func BadRequest(message string) *AppError {
	return NewAppError(ErrorCodeBadRequest, message, gofiber.StatusBadRequest)
}

// ValidationError creates a validation error for one field.
func ValidationError(field, message string) *AppError {
	return NewAppError(ErrorCodeValidation, "Validation failed", gofiber.StatusBadRequest).
		WithDetails(map[string]any{
			"field":   field,
			"message": message,
		})
}

// internalMessage replaces the text of unexpected errors outside dev mode.
const internalMessage = "Internal server error"

// ErrorHandlerConfig holds error handler configuration.
type ErrorHandlerConfig struct {
	// DevMode shows the text and stack trace of unexpected errors to the
	// client. Otherwise they get a generic message.
	DevMode bool
	// StateKey is the Locals key holding the request's *state.StateMap.
	// When present, the state is included in the error response.
	StateKey string
	// OnError is called for every handled error.
	OnError func(*gofiber.Ctx, *AppError)
}

// DefaultErrorHandlerConfig returns default error handler configuration.
func DefaultErrorHandlerConfig() ErrorHandlerConfig {
	return ErrorHandlerConfig{
		StateKey: StateKey,
	}
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case gofiber.StatusNotFound:
		return ErrorCodeNotFound
	case gofiber.StatusBadRequest, gofiber.StatusMethodNotAllowed:
		return ErrorCodeBadRequest
	case gofiber.StatusForbidden:
		return ErrorCodeForbidden
	case gofiber.StatusRequestEntityTooLarge:
		return ErrorCodeTooLarge
	case gofiber.StatusServiceUnavailable:
		return ErrorCodeUnavailable
	default:
		return ErrorCodeInternal
	}
}

// ErrorHandler creates a Fiber error handler answering JSON or HTML by the
// request's Accept header.
func ErrorHandler(config ErrorHandlerConfig) gofiber.ErrorHandler {
	return func(c *gofiber.Ctx, err error) error {
		appErr, ok := AsAppError(err)
		if !ok {
			var fiberErr *gofiber.Error
			if errors.As(err, &fiberErr) {
				appErr = NewAppError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code)
			} else if config.DevMode {
				appErr = NewAppError(ErrorCodeInternal, err.Error(), gofiber.StatusInternalServerError).
					WithStack(string(debug.Stack()))
			} else {
				appErr = NewAppError(ErrorCodeInternal, internalMessage, gofiber.StatusInternalServerError)
				appErr.cause = err
			}
		}

		if config.OnError != nil {
			config.OnError(c, appErr)
		}

		var stateData json.RawMessage
		if config.StateKey != "" {
			if sm, ok := c.Locals(config.StateKey).(*state.StateMap); ok && sm != nil {
				if data, err := sm.MarshalJSON(); err == nil {
					stateData = data
				}
			}
		}

		if strings.HasPrefix(c.Get(gofiber.HeaderAccept), gofiber.MIMEApplicationJSON) ||
			strings.HasPrefix(c.Get(gofiber.HeaderContentType), gofiber.MIMEApplicationJSON) {
			body := gofiber.Map{
				"error":   appErr.Code,
				"message": appErr.Message,
			}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}
			if stateData != nil {
				body["state"] = stateData
			}
			return c.Status(appErr.StatusCode).JSON(body)
		}

		return renderErrorPage(c, appErr, config.DevMode)
	}
}

const errorPageCSS = `body{font-family:system-ui,sans-serif;max-width:960px;margin:3rem auto;padding:0 1rem}` +
	`pre{white-space:pre-wrap;padding:1rem;border-radius:6px;background:#f6f6f8}` +
	`.error-code{color:#b91c1c;font-weight:700}.stack{font-size:.8rem;color:#555}`

// renderErrorPage renders an error page.
func renderErrorPage(c *gofiber.Ctx, appErr *AppError, devMode bool) error {
	var parts []templ.Component
	parts = append(parts,
		errorBlock("error-code", string(appErr.Code)),
		errorBlock("error-message", appErr.Message),
	)
	if len(appErr.Details) > 0 {
		detailsJSON, _ := json.MarshalIndent(appErr.Details, "", "  ")
		parts = append(parts, errorBlock("error-details", string(detailsJSON)))
	}
	if devMode && appErr.Stack != "" {
		parts = append(parts, errorBlock("stack", appErr.Stack))
	}

	page := foliotempl.HTMLPage("en",
		foliotempl.Head(
			foliotempl.Title("Error - "+string(appErr.Code)),
			foliotempl.CSSInline(errorPageCSS),
		),
		foliotempl.Fragment(parts...),
	)
	page = foliotempl.ErrorBoundary(page, func(error) templ.Component {
		return foliotempl.Text(string(appErr.Code) + ": " + appErr.Message)
	})
	html, err := foliotempl.RenderString(context.Background(), page)
	if err != nil {
		return err
	}
	c.Set(gofiber.HeaderContentType, gofiber.MIMETextHTMLCharsetUTF8)
	return c.Status(appErr.StatusCode).SendString(html)
}

func errorBlock(class, text string) templ.Component {
	return foliotempl.Fragment(
		foliotempl.Raw(`<pre class="`+class+`">`),
		foliotempl.Text(text),
		foliotempl.Raw(`</pre>`),
	)
}

// NotFoundHandler creates a 404 handler.
func NotFoundHandler() gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		return NotFound("Page not found: " + c.Path())
	}
}

// AsAppError converts an error to AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
