package state

import (
	"sync"
	"testing"
)

func TestNewRune(t *testing.T) {
	r := NewRune(42)
	if r.Get() != 42 {
		t.Errorf("Expected initial value 42, got %d", r.Get())
	}

	s := NewRune("hello")
	if s.Get() != "hello" {
		t.Errorf("Expected initial value 'hello', got %s", s.Get())
	}
}

func TestRuneSubscribeIsSynchronous(t *testing.T) {
	r := NewRune(0)
	var received []int

	unsub := r.Subscribe(func(v int) {
		received = append(received, v)
	})
	defer unsub()

	r.Set(1)
	r.Set(2)
	r.Set(3)

	if len(received) != 3 || received[0] != 1 || received[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", received)
	}
}

func TestRuneUnsubscribe(t *testing.T) {
	r := NewRune(0)
	count := 0
	unsub := r.Subscribe(func(int) { count++ })

	r.Set(1)
	unsub()
	r.Set(2)

	if count != 1 {
		t.Errorf("Expected 1 notification after unsubscribe, got %d", count)
	}
}

func TestRuneNoNotificationOnEqualValue(t *testing.T) {
	tests := []struct {
		name string
		run  func(notify func())
	}{
		{"int", func(notify func()) {
			r := NewRune(5)
			r.Subscribe(func(int) { notify() })
			r.Set(5)
		}},
		{"string", func(notify func()) {
			r := NewRune("a")
			r.Subscribe(func(string) { notify() })
			r.Set("a")
		}},
		{"slice", func(notify func()) {
			r := NewRune([]int{1, 2})
			r.Subscribe(func([]int) { notify() })
			r.Set([]int{1, 2})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			tt.run(func() { count++ })
			if count != 0 {
				t.Errorf("Expected no notification for equal value, got %d", count)
			}
		})
	}
}

func TestRuneUpdate(t *testing.T) {
	r := NewRune(5)
	r.Update(func(v int) int { return v * 2 })
	if r.Get() != 10 {
		t.Errorf("Expected value 10 after update, got %d", r.Get())
	}
}

func TestRuneAnyHoldsMixedValues(t *testing.T) {
	r := NewRune[any]("x")
	count := 0
	r.Subscribe(func(any) { count++ })

	r.Set(1)
	r.Set(1)
	if count != 1 {
		t.Errorf("Expected 1 notification, got %d", count)
	}
}

func TestRuneConcurrentAccess(t *testing.T) {
	r := NewRune(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			r.Set(v)
		}(i)
		go func() {
			defer wg.Done()
			_ = r.Get()
		}()
	}
	wg.Wait()
}
