package modal

import (
	"fmt"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/aydenstechdungeon/folio/dom"
)

// Severity grades a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue describes markup the controller will silently tolerate at runtime
// but that is almost certainly a mistake.
type Issue struct {
	Severity Severity `json:"severity"`
	Selector string   `json:"selector"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Selector, i.Message)
}

// Lint inspects doc for modal markup problems. Issues come back sorted by
// document position.
func Lint(doc *dom.Document) []Issue {
	type positioned struct {
		order int
		issue Issue
	}
	var found []positioned
	report := func(s *goquery.Selection, sev Severity, format string, args ...any) {
		n := s.Get(0)
		found = append(found, positioned{
			order: doc.Order(n),
			issue: Issue{Severity: sev, Selector: dom.Selector(n), Message: fmt.Sprintf(format, args...)},
		})
	}

	triggers := doc.Find("[" + TriggerAttr + "]")
	if triggers.Length() > 0 && doc.ByID(BackdropID) == nil {
		report(doc.Wrap(doc.Body()), SeverityWarning, "no #%s element; modals open without a backdrop", BackdropID)
	}

	targets := make(map[string]bool)
	triggers.Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr(TriggerAttr)
		switch {
		case id == "":
			report(s, SeverityError, "%s is empty", TriggerAttr)
		case doc.ByID(id) == nil:
			report(s, SeverityError, "%s names unknown element #%s", TriggerAttr, id)
		default:
			targets[id] = true
		}
	})

	seen := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if !targets[id] {
			return
		}
		if seen[id] {
			report(s, SeverityError, "duplicate id %q; only the first element opens", id)
			return
		}
		seen[id] = true

		if _, ok := s.Attr("tabindex"); !ok {
			report(s, SeverityWarning, "modal has no tabindex and cannot take focus when opened")
		}
		if s.HasClass(ActiveClass) {
			report(s, SeverityWarning, "modal is marked %q in the initial markup", ActiveClass)
		}
		if v, _ := s.Attr(ariaHidden); v != "true" {
			report(s, SeverityWarning, "modal should start with aria-hidden=\"true\"")
		}
	})

	sort.SliceStable(found, func(i, j int) bool { return found[i].order < found[j].order })
	issues := make([]Issue, len(found))
	for i, p := range found {
		issues[i] = p.issue
	}
	return issues
}
