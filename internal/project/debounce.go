package project

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single run of fn after a
// quiet period. Standard timer-reset semantics: every Trigger supersedes a
// previously pending run, so rapid edits produce one export at the end.
//
// fn runs on a timer goroutine; it must do its own synchronization and must
// not block for long.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	pending bool
	stopped bool
}

// NewDebouncer creates a debouncer. A zero or negative delay makes Trigger
// run fn synchronously (useful for CLI one-shot flows and tests).
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn after the quiet period, replacing any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.fn()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || !d.pending {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
		d.fn()
	})
	d.mu.Unlock()
}

// SetDelay changes the quiet period for subsequent triggers.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Flush runs fn immediately if a run is pending, cancelling the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	wasPending := d.pending
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	if wasPending {
		d.fn()
	}
}

// Stop cancels any pending run and ignores further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}
