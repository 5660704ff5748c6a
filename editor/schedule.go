// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package editor

import (
	"sync"
	"time"
)

// A Scheduler runs callbacks after a delay.
type Scheduler interface {
	// Schedule arranges for f to be called after delay, and returns a function
	// that cancels the call if it has not yet started. Calling cancel more than
	// once, or after f has run, has no effect.
	Schedule(f func(), delay time.Duration) (cancel func())
}

// TimerScheduler is a Scheduler that runs callbacks on their own goroutines
// using time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements the Scheduler interface.
func (TimerScheduler) Schedule(f func(), delay time.Duration) func() {
	t := time.AfterFunc(delay, f)
	return func() { t.Stop() }
}

// A Debouncer coalesces bursts of triggers into a single callback. Each call
// to Trigger cancels the callback scheduled by the previous call, if it has
// not yet run, so only the last trigger of a burst takes effect.
type Debouncer struct {
	sched Scheduler
	delay time.Duration

	mu     sync.Mutex
	gen    uint64 // incremented by each Trigger and by Stop
	cancel func()
}

// NewDebouncer constructs a Debouncer that schedules callbacks with s after
// the given delay. If s == nil, a TimerScheduler is used.
func NewDebouncer(s Scheduler, delay time.Duration) *Debouncer {
	if s == nil {
		s = TimerScheduler{}
	}
	return &Debouncer{sched: s, delay: delay}
}

// Trigger schedules f, canceling any callback previously scheduled by d that
// has not yet run.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	gen := d.gen

	// The scheduler may be unable to cancel a callback that is already
	// starting, so each callback also checks that it is still current.
	d.cancel = d.sched.Schedule(func() {
		d.mu.Lock()
		current := d.gen == gen
		if current {
			d.cancel = nil
		}
		d.mu.Unlock()
		if current {
			f()
		}
	}, d.delay)
}

// Stop cancels the pending callback, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	d.gen++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
