// Package contact validates the contact form and simulates sending it.
package contact

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// spaces is the set of characters browsers treat as whitespace in
// patterns and when trimming input.
const spaces = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var emailPattern = regexp.MustCompile(`^[^` + spaces + `@]+@[^` + spaces + `@]+\.[^` + spaces + `@]+$`)

// isSpace matches the same set as spaces. unicode.IsSpace also counts
// U+0085, which browsers do not.
func isSpace(r rune) bool {
	return r == '\ufeff' || (unicode.IsSpace(r) && r != '\u0085')
}

// trim strips leading and trailing whitespace the way a browser does.
func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// textLength counts s in UTF-16 code units, the unit browsers measure
// input length in.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// Submission is the data of one sent form. Values are trimmed.
type Submission struct {
	Name    string `json:"name" validate:"min_units=2"`
	Email   string `json:"email" validate:"portfolio_email"`
	Subject string `json:"subject" validate:"min_units=3"`
	Message string `json:"message" validate:"min_units=15"`
}

// Fields lists the form's field keys in validation order. Each key is both
// the input's id and, suffixed with "-error", the id of its message.
var Fields = []string{"name", "email", "subject", "message"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("contact: register %s: %v", tag, err))
		}
	}
	must("portfolio_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	must("min_units", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			panic(fmt.Sprintf("contact: bad min_units parameter %q", fl.Param()))
		}
		return textLength(fl.Field().String()) >= n
	})
	return v
}

// rules maps a field key to its validator tag, read from Submission.
var rules = func() map[string]string {
	out := make(map[string]string)
	t := reflect.TypeOf(Submission{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		out[name] = f.Tag.Get("validate")
	}
	return out
}()

// ValidValue reports whether value passes the rule for key. Values are
// trimmed first. Unknown keys are valid.
func ValidValue(key, value string) bool {
	rule, ok := rules[key]
	if !ok {
		return true
	}
	return validate.Var(trim(value), rule) == nil
}

// Validate checks every field and returns validator.ValidationErrors naming
// the failing ones by their JSON key.
func (s Submission) Validate() error {
	return validate.Struct(s)
}
