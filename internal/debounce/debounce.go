// Package debounce coalesces bursts of state mutations into single deferred
// writes: schedule, cancel-and-reschedule on newer input, flush on shutdown.
package debounce

import (
	"sync"
	"time"
)

// Debouncer defers a function call until delay has passed since the most
// recent Schedule. A newer Schedule supersedes a pending one (last write
// wins); nothing runs twice for one burst of edits.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// New returns a debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule queues fn to run after the delay, cancelling any previously
// scheduled call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// fire runs the pending call, unless it was cancelled or already flushed.
func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Pending reports whether a call is scheduled but not yet run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
