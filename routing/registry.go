// Package routing maps request paths to the HTML pages of a site directory
// and caches their contents.
package routing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrNotFound is returned when no page matches a path.
var ErrNotFound = errors.New("page not found")

// Registry serves pages from a directory. It is safe for concurrent use.
type Registry struct {
	dir string

	mu    sync.RWMutex
	cache map[string][]byte

	// OnChange, when set, is called with the page name of every file the
	// watcher invalidates.
	OnChange func(name string)
}

// NewRegistry creates a registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:   dir,
		cache: make(map[string][]byte),
	}
}

// Dir returns the pages directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Resolve maps a URL path to a page name relative to the pages directory:
// "/" and directories map to their index.html, "/about" to about.html.
// Only .html pages resolve.
func Resolve(urlPath string) (string, error) {
	if strings.Contains(urlPath, "\\") || strings.ContainsRune(urlPath, 0) {
		return "", ErrNotFound
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", ErrNotFound
		}
	}
	trailing := strings.HasSuffix(urlPath, "/")
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")

	switch {
	case clean == "" || trailing:
		clean = path.Join(clean, "index.html")
	case path.Ext(clean) == "":
		clean += ".html"
	}
	if path.Ext(clean) != ".html" {
		return "", ErrNotFound
	}
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", ErrNotFound
		}
	}
	return clean, nil
}

// Load returns the contents of the page for urlPath along with its name.
func (r *Registry) Load(urlPath string) ([]byte, string, error) {
	name, err := Resolve(urlPath)
	if err != nil {
		return nil, "", err
	}

	r.mu.RLock()
	data, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return data, name, nil
	}

	data, err = os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, name, ErrNotFound
	}
	if err != nil {
		return nil, name, fmt.Errorf("read page %s: %w", name, err)
	}

	r.mu.Lock()
	r.cache[name] = data
	r.mu.Unlock()
	return data, name, nil
}

// Invalidate drops the cached copy of a page.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	delete(r.cache, name)
	r.mu.Unlock()
}


// Pages lists the page names under the directory.
func (r *Registry) Pages() ([]string, error) {
	var names []string
	err := filepath.WalkDir(r.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(r.dir, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return names, nil
}

// Watch invalidates cached pages as their files change until ctx is done.
// ready, when non-nil, is closed once the watcher is registered.
func (r *Registry) Watch(ctx context.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(r.dir, func(p string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			rel, err := filepath.Rel(r.dir, event.Name)
			if err != nil || filepath.Ext(rel) != ".html" {
				continue
			}
			name := filepath.ToSlash(rel)
			r.Invalidate(name)
			if r.OnChange != nil {
				r.OnChange(name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", r.dir, err)
		}
	}
}
