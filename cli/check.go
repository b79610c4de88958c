package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aydenstechdungeon/folio/dom"
	"github.com/aydenstechdungeon/folio/modal"
	"github.com/aydenstechdungeon/folio/routing"
)

// Check lints the modal markup of an HTML page, prints every issue and
// returns them.
func Check(p *Printer, path string) ([]modal.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	issues := modal.Lint(doc)
	for _, is := range issues {
		line := fmt.Sprintf("%s %s", p.Bold(is.Selector), is.Message)
		if is.Severity == modal.SeverityError {
			p.Error("%s", line)
		} else {
			p.Warning("%s", line)
		}
	}
	if len(issues) == 0 {
		p.Success("%s: modal markup looks good", path)
	}
	return issues, nil
}

// CheckSite lints every page of a site and returns how many pages have
// issues or could not be read.
func CheckSite(p *Printer, r *routing.Registry) (int, error) {
	names, err := r.Pages()
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		p.Warning("no pages in %s", r.Dir())
		return 0, nil
	}
	failed := 0
	for _, name := range names {
		issues, err := Check(p, filepath.Join(r.Dir(), filepath.FromSlash(name)))
		if err != nil {
			p.Error("%v", err)
			failed++
			continue
		}
		if len(issues) > 0 {
			failed++
		}
	}
	return failed, nil
}
