package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aydenstechdungeon/folio/component"
	foliotempl "github.com/aydenstechdungeon/folio/templ"
)

// ConfigFile is the config file name folio serve looks for by default.
const ConfigFile = "folio.yaml"

const configTemplate = `# folio configuration
addr: ":3000"
app_name: %q
pages_dir: ./pages
static_dir: ./static
static_prefix: /static
dev_mode: true
# redis_url: redis://localhost:6379/0
session_ttl: 30m
preference_ttl: 8760h
compress: true
send_delay: 1200ms
notice_duration: 5s
`

const stylesheet = `:root { --bg: #fff; --fg: #1d1d1f; --accent: #2563eb; --shadow: 0 2px 12px rgba(0, 0, 0, .08); }
[data-theme="dark"] { --bg: #111318; --fg: #e8e8ea; --accent: #60a5fa; --shadow: 0 2px 12px rgba(0, 0, 0, .5); }
body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; }
body.modal-open { overflow: hidden; }
.navbar { position: sticky; top: 0; display: flex; justify-content: space-between; padding: 1rem 2rem; background: var(--bg); }
.nav-links a.active { color: var(--accent); }
.reveal { opacity: 0; transform: translateY(24px); transition: opacity .6s, transform .6s; }
.reveal.visible { opacity: 1; transform: none; }
.project-card[data-hidden="true"] { display: none; }
.filter-btn.active { background: var(--accent); color: #fff; }
.modal-backdrop { position: fixed; inset: 0; background: rgba(0, 0, 0, .5); opacity: 0; pointer-events: none; }
.modal-backdrop.active { opacity: 1; pointer-events: auto; }
.modal { position: fixed; top: 50%; left: 50%; transform: translate(-50%, -50%); display: none; background: var(--bg); max-height: 85vh; }
.modal.active { display: flex; flex-direction: column; }
.modal-body { overflow-y: auto; padding: 1.5rem; }
.modal-sm { width: 360px; } .modal-md { width: 560px; } .modal-lg { width: 820px; }
.form-group input.error, .form-group textarea.error { border-color: #dc2626; }
.form-error { display: none; color: #dc2626; } .form-error.visible { display: block; }
.form-success { display: none; } .form-success.visible { display: block; }
.scroll-top { position: fixed; right: 1.5rem; bottom: 1.5rem; opacity: 0; } .scroll-top.visible { opacity: 1; }
`

const favicon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="#2563eb"/><path d="M10 8h12v4h-8v4h7v4h-7v6h-4z" fill="#fff"/></svg>
`

// ValidateProjectName checks if a project name is valid.
func ValidateProjectName(name string) error {
	if name == "" {
		return errors.New("project name cannot be empty")
	}
	if strings.Contains(name, " ") {
		return errors.New("project name cannot contain spaces")
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "_") {
		return errors.New("project name cannot start with - or _")
	}
	return nil
}

// Scaffold creates a new site in dir: a sample portfolio page, its
// stylesheet and a config file. It refuses to write into a non-empty
// directory.
func Scaffold(dir string) error {
	if err := ValidateProjectName(filepath.Base(dir)); err != nil {
		return err
	}
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return fmt.Errorf("directory %s is not empty", dir)
	}

	for _, sub := range []string{"pages", "static"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	page, err := foliotempl.RenderString(context.Background(), component.SamplePortfolio(component.DefaultPortfolio()))
	if err != nil {
		return fmt.Errorf("render sample page: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"pages/index.html", page},
		{"static/style.css", stylesheet},
		{"static/favicon.svg", favicon},
		{ConfigFile, fmt.Sprintf(configTemplate, filepath.Base(dir))},
		{".gitignore", "/folio\n*.log\n"},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(f.name)), []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return nil
}
