package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aydenstechdungeon/folio"
	"github.com/aydenstechdungeon/folio/modal"
	"github.com/aydenstechdungeon/folio/routing"
)

func testPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinterTo(&out, &errOut), &out, &errOut
}

func TestPrinterWithoutTerminal(t *testing.T) {
	p, out, errOut := testPrinter()
	p.Success("done %d", 1)
	p.Error("failed")
	if out.String() != "✓ done 1\n" {
		t.Errorf("Expected plain success line, got %q", out.String())
	}
	if errOut.String() != "✗ failed\n" {
		t.Errorf("Expected error on the error output, got %q", errOut.String())
	}
	if p.Bold("x") != "x" {
		t.Error("Expected no escape codes when not writing to a terminal")
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"site", true},
		{"my-site", true},
		{"", false},
		{"my site", false},
		{"-site", false},
		{"_site", false},
	}
	for _, tt := range tests {
		if err := ValidateProjectName(tt.name); (err == nil) != tt.ok {
			t.Errorf("ValidateProjectName(%q): expected ok=%v, got %v", tt.name, tt.ok, err)
		}
	}
}

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	if err := Scaffold(dir); err != nil {
		t.Fatalf("Scaffold failed: %v", err)
	}
	for _, name := range []string{"pages/index.html", "static/style.css", "static/favicon.svg", ConfigFile, ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	cfg, err := folio.LoadConfig(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("Expected the generated config to load, got %v", err)
	}
	if cfg.AppName != "site" || !cfg.DevMode {
		t.Errorf("Expected generated values, got %+v", cfg)
	}

	p, _, _ := testPrinter()
	issues, err := Check(p, filepath.Join(dir, "pages", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Errorf("Expected the sample page to lint clean, got %v", issues)
	}

	if err := Scaffold(dir); err == nil {
		t.Error("Expected Scaffold to refuse a non-empty directory")
	}

	failed, err := CheckSite(p, routing.NewRegistry(filepath.Join(dir, "pages")))
	if err != nil || failed != 0 {
		t.Errorf("Expected the whole site to lint clean, got %d failed, %v", failed, err)
	}
}

func TestCheckSite(t *testing.T) {
	dir := t.TempDir()
	pages := map[string]string{
		"index.html":     `<html><body><p>plain</p></body></html>`,
		"blog/post.html": `<html><body><button data-modal="gone">x</button></body></html>`,
	}
	for name, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p, _, errOut := testPrinter()
	failed, err := CheckSite(p, routing.NewRegistry(dir))
	if err != nil {
		t.Fatal(err)
	}
	if failed != 1 {
		t.Errorf("Expected 1 failing page, got %d", failed)
	}
	if !strings.Contains(errOut.String(), "#gone") {
		t.Errorf("Expected the broken trigger reported, got %q", errOut.String())
	}

	if _, err := CheckSite(p, routing.NewRegistry(filepath.Join(dir, "missing"))); err == nil {
		t.Error("Expected an error for a missing pages directory")
	}
}

func TestCheckReportsIssues(t *testing.T) {
	page := `<!DOCTYPE html><html><body>
<button data-modal="missing">Open</button>
<div id="m" class="modal active">x</div>
</body></html>`
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	p, out, errOut := testPrinter()
	issues, err := Check(p, path)
	if err != nil {
		t.Fatal(err)
	}
	var errs int
	for _, is := range issues {
		if is.Severity == modal.SeverityError {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("Expected 1 error issue, got %d in %v", errs, issues)
	}
	if !strings.Contains(errOut.String(), "unknown element #missing") {
		t.Errorf("Expected the unknown target reported, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), "#"+modal.BackdropID) {
		t.Errorf("Expected the missing backdrop warned about, got %q", out.String())
	}

	if _, err := Check(p, filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
