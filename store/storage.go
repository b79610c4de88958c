// Package store provides the key-value storage behind persisted page
// preferences.
package store

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key is not present.
var ErrNotFound = errors.New("key not found")

// Storage is an external key-value store.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

type memoryEntry struct {
	val []byte
	exp time.Time
}

// MemoryStorage is an in-process Storage. Expired entries are dropped
// lazily on read.
type MemoryStorage struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		store: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// Get returns a copy of the stored value.
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.store[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !entry.exp.IsZero() && s.now().After(entry.exp) {
		_ = s.Delete(key)
		return nil, ErrNotFound
	}
	out := make([]byte, len(entry.val))
	copy(out, entry.val)
	return out, nil
}

// Set stores a copy of val. A positive exp makes the entry expire.
func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	var expiresAt time.Time
	if exp > 0 {
		expiresAt = s.now().Add(exp)
	}
	cp := make([]byte, len(val))
	copy(cp, val)

	s.mu.Lock()
	s.store[key] = memoryEntry{val: cp, exp: expiresAt}
	s.mu.Unlock()
	return nil
}

// Delete removes key.
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	delete(s.store, key)
	s.mu.Unlock()
	return nil
}

// Prune removes every expired entry and returns how many were dropped.
func (s *MemoryStorage) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, entry := range s.store {
		if !entry.exp.IsZero() && now.After(entry.exp) {
			delete(s.store, key)
			n++
		}
	}
	return n
}

type prefixed struct {
	inner  Storage
	prefix string
}

// Prefixed namespaces every key of inner with prefix, giving each visitor
// its own view of a shared backend.
func Prefixed(inner Storage, prefix string) Storage {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(key string) ([]byte, error) {
	return p.inner.Get(p.prefix + key)
}

func (p *prefixed) Set(key string, val []byte, exp time.Duration) error {
	return p.inner.Set(p.prefix+key, val, exp)
}

func (p *prefixed) Delete(key string) error {
	return p.inner.Delete(p.prefix + key)
}
