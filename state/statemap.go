package state

import (
	"sync"

	"github.com/goccy/go-json"
)

// StateMap is a named collection of observables that can be snapshotted
// and serialized as one JSON object.
type StateMap struct {
	mu           sync.RWMutex
	observables  map[string]Observable
	unsubscribes map[string]Unsubscribe
	// OnChange, when set, is called after any member changes.
	OnChange func(key string, value any)
}

// NewStateMap creates an empty collection.
func NewStateMap() *StateMap {
	return &StateMap{
		observables:  make(map[string]Observable),
		unsubscribes: make(map[string]Unsubscribe),
	}
}

// Add registers obs under name, replacing any previous entry.
func (sm *StateMap) Add(name string, obs Observable) *StateMap {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if unsub, ok := sm.unsubscribes[name]; ok {
		unsub()
	}
	sm.observables[name] = obs
	sm.unsubscribes[name] = obs.SubscribeAny(func(v any) {
		sm.mu.RLock()
		handler := sm.OnChange
		sm.mu.RUnlock()
		if handler != nil {
			handler(name, v)
		}
	})
	return sm
}

// Get returns the observable registered under name.
func (sm *StateMap) Get(name string) (Observable, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	obs, ok := sm.observables[name]
	return obs, ok
}

// ToMap returns a snapshot of every current value.
func (sm *StateMap) ToMap() map[string]any {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make(map[string]any, len(sm.observables))
	for k, obs := range sm.observables {
		out[k] = obs.GetAny()
	}
	return out
}

// MarshalJSON encodes the snapshot as a flat object of plain values.
func (sm *StateMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(sm.ToMap())
}
