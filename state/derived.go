package state

import "sync"

// Derived is a value computed from other observables. It recomputes as soon
// as any dependency changes and notifies its own subscribers when the
// result differs.
type Derived[T any] struct {
	mu      sync.RWMutex
	value   T
	compute func() T
	subs    subscribers[T]
}

// DerivedFrom creates a Derived that recomputes whenever one of deps
// changes.
//
//	active := state.NewRune("")
//	open := state.DerivedFrom(func() bool { return active.Get() != "" }, active)
func DerivedFrom[T any](compute func() T, deps ...Observable) *Derived[T] {
	d := &Derived[T]{
		value:   compute(),
		compute: compute,
	}
	for _, dep := range deps {
		dep.SubscribeAny(func(any) { d.recompute() })
	}
	return d
}

func (d *Derived[T]) recompute() {
	next := d.compute()
	d.mu.Lock()
	if equal(d.value, next) {
		d.mu.Unlock()
		return
	}
	d.value = next
	subs := d.subs.snapshot()
	d.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
}

// Get returns the current computed value.
func (d *Derived[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// GetAny implements Observable.
func (d *Derived[T]) GetAny() any {
	return d.Get()
}

// Subscribe registers fn for future changes of the computed value.
func (d *Derived[T]) Subscribe(fn Subscriber[T]) Unsubscribe {
	return d.subs.add(&d.mu, fn)
}

// SubscribeAny implements Observable.
func (d *Derived[T]) SubscribeAny(fn func(any)) Unsubscribe {
	return d.Subscribe(func(v T) { fn(v) })
}
