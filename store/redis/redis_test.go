package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aydenstechdungeon/folio/store"
)

func TestStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Get("portfolio-theme"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := s.Set("portfolio-theme", []byte("dark"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get("portfolio-theme")
	if err != nil || string(got) != "dark" {
		t.Errorf("Expected 'dark', got %q (%v)", got, err)
	}

	if err := s.Delete("portfolio-theme"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mr.Exists("portfolio-theme") {
		t.Error("Expected key to be deleted on the server")
	}
}

func TestStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	_ = s.Set("k", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)

	if _, err := s.Get("k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected expired key to be gone, got %v", err)
	}
}

func TestPrefixedOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	visitor := store.Prefixed(s, "visitor-1:")
	_ = visitor.Set("portfolio-theme", []byte("dark"), 0)

	if v, err := mr.Get("visitor-1:portfolio-theme"); err != nil || v != "dark" {
		t.Errorf("Expected namespaced key on server, got %q (%v)", v, err)
	}
}

func TestOpenBadURL(t *testing.T) {
	if _, err := Open(context.Background(), "::not a url"); err == nil {
		t.Error("Expected error for malformed URL")
	}
}
