// Package state provides small reactive primitives used to publish page
// state. Rune[T] holds a value and notifies subscribers synchronously when
// it changes; Derived[T] recomputes from other observables.
package state

import (
	"reflect"
	"sync"
)

// Unsubscribe removes a subscription.
type Unsubscribe func()

// Subscriber receives value updates.
type Subscriber[T any] func(T)

// Observable is the type-erased view of a rune or derived value, so mixed
// types can live in one StateMap.
type Observable interface {
	SubscribeAny(func(any)) Unsubscribe
	GetAny() any
}

type subEntry[T any] struct {
	id uint64
	fn Subscriber[T]
}

// subscribers is the subscription list shared by Rune and Derived.
type subscribers[T any] struct {
	entries []subEntry[T]
	nextID  uint64
}

func (s *subscribers[T]) add(mu sync.Locker, fn Subscriber[T]) Unsubscribe {
	mu.Lock()
	defer mu.Unlock()
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, subEntry[T]{id: id, fn: fn})
	return func() {
		mu.Lock()
		defer mu.Unlock()
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers[T]) snapshot() []subEntry[T] {
	out := make([]subEntry[T], len(s.entries))
	copy(out, s.entries)
	return out
}

// Rune is a reactive value. Set notifies subscribers on the calling
// goroutine, after the lock is released, and only when the value changed.
type Rune[T any] struct {
	mu    sync.RWMutex
	value T
	subs  subscribers[T]
}

// NewRune creates a Rune holding initial.
//
//	open := state.NewRune(false)
//	theme := state.NewRune("light")
func NewRune[T any](initial T) *Rune[T] {
	return &Rune[T]{value: initial}
}

// Get returns the current value.
func (r *Rune[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// GetAny implements Observable.
func (r *Rune[T]) GetAny() any {
	return r.Get()
}

// Set stores value and notifies subscribers if it differs from the
// current value.
func (r *Rune[T]) Set(value T) {
	r.Update(func(T) T { return value })
}

// Update applies fn to the current value and stores the result.
func (r *Rune[T]) Update(fn func(T) T) {
	r.mu.Lock()
	next := fn(r.value)
	if equal(r.value, next) {
		r.mu.Unlock()
		return
	}
	r.value = next
	subs := r.subs.snapshot()
	r.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
}

// Subscribe registers fn for future changes.
func (r *Rune[T]) Subscribe(fn Subscriber[T]) Unsubscribe {
	return r.subs.add(&r.mu, fn)
}

// SubscribeAny implements Observable.
func (r *Rune[T]) SubscribeAny(fn func(any)) Unsubscribe {
	return r.Subscribe(func(v T) { fn(v) })
}

// equal avoids reflection for the common comparable kinds.
func equal[T any](a, b T) bool {
	switch av := any(a).(type) {
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
}
