// Package timing provides the two timing primitives the search form relies
// on: keystroke debouncing and a minimum-duration guard for loading states.
// They are deliberately independent so each can be tested in isolation.
package timing

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of triggers into a single callback invocation
// after a quiet period. Each Trigger restarts the timer, so only the last
// callback scheduled before the quiet period actually runs.
//
// The callback runs on a timer goroutine; callers that touch shared state
// must synchronize themselves.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending callback. A stopped Debouncer can be reused.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
