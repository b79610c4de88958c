package dom

import (
	"math"
	"time"
)

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// clock is a virtual timeline. Time only moves when Advance is called, so
// callbacks run on the caller's goroutine in a deterministic order.
type clock struct {
	now    time.Duration
	seq    uint64
	timers []timer
}

// SetTimeout schedules fn to run once delay has elapsed on the document
// clock.
func (d *Document) SetTimeout(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	if delay > math.MaxInt64-d.clock.now {
		delay = math.MaxInt64 - d.clock.now
	}
	d.clock.seq++
	d.clock.timers = append(d.clock.timers, timer{
		due: d.clock.now + delay,
		seq: d.clock.seq,
		fn:  fn,
	})
}

// Advance moves the clock forward by delta, running every callback that
// falls due in due-time order. Callbacks scheduled while advancing run too
// if they fall due within the window. The clock stops at the largest
// Duration instead of wrapping.
func (d *Document) Advance(delta time.Duration) {
	if delta < 0 {
		delta = 0
	}
	if delta > math.MaxInt64-d.clock.now {
		delta = math.MaxInt64 - d.clock.now
	}
	target := d.clock.now + delta
	for {
		idx := -1
		for i, t := range d.clock.timers {
			if t.due > target {
				continue
			}
			if idx == -1 || t.due < d.clock.timers[idx].due ||
				(t.due == d.clock.timers[idx].due && t.seq < d.clock.timers[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		t := d.clock.timers[idx]
		d.clock.timers = append(d.clock.timers[:idx], d.clock.timers[idx+1:]...)
		d.clock.now = t.due
		t.fn()
	}
	d.clock.now = target
}

// Now returns the elapsed time on the document clock.
func (d *Document) Now() time.Duration {
	return d.clock.now
}

// PendingTimers returns the number of scheduled callbacks.
func (d *Document) PendingTimers() int {
	return len(d.clock.timers)
}
