// Package debounce collapses bursts of keyed triggers into a single action.
//
// Each trigger for a key cancels the action still pending for that key and
// schedules a new one, so only the last trigger inside the quiet window runs.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer schedules cancellable delayed actions keyed by string.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*entry
}

type entry struct {
	timer *time.Timer
	once  sync.Once
	fire  func()
	drop  func()
}

// resolve runs exactly one of fire or drop for the entry's lifetime.
func (e *entry) resolve(fired bool) {
	e.once.Do(func() {
		if fired {
			if e.fire != nil {
				e.fire()
			}
			return
		}
		if e.drop != nil {
			e.drop()
		}
	})
}

// New returns a debouncer with the given quiet window. Non-positive delays
// fall back to zero, which still supersedes triggers that race each other.
func New(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, pending: make(map[string]*entry)}
}

// Delay returns the configured quiet window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn to run after the quiet window unless another trigger
// for the same key arrives first. The returned function cancels this trigger.
func (d *Debouncer) Trigger(key string, fn func()) (cancel func()) {
	return d.schedule(key, fn, nil)
}

// Settle blocks for the quiet window and reports whether the caller's trigger
// was the last one for key. A superseded caller gets false with a nil error;
// a cancelled ctx gets false with ctx.Err().
func (d *Debouncer) Settle(ctx context.Context, key string) (bool, error) {
	fired := make(chan struct{})
	dropped := make(chan struct{})
	cancel := d.schedule(key, func() { close(fired) }, func() { close(dropped) })

	select {
	case <-fired:
		return true, nil
	case <-dropped:
		return false, nil
	case <-ctx.Done():
		cancel()
		return false, ctx.Err()
	}
}

// Stop cancels every pending action.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	pending := d.pending
	d.pending = make(map[string]*entry)
	d.mu.Unlock()

	for _, e := range pending {
		e.timer.Stop()
		e.resolve(false)
	}
}

// Pending reports whether an action is waiting for key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

func (d *Debouncer) schedule(key string, fire, drop func()) func() {
	e := &entry{fire: fire, drop: drop}

	d.mu.Lock()
	prev := d.pending[key]
	d.pending[key] = e
	e.timer = time.AfterFunc(d.delay, func() { d.expire(key, e) })
	d.mu.Unlock()

	if prev != nil {
		prev.timer.Stop()
		prev.resolve(false)
	}

	return func() {
		d.mu.Lock()
		if d.pending[key] == e {
			delete(d.pending, key)
			e.timer.Stop()
		}
		d.mu.Unlock()
		e.resolve(false)
	}
}

func (d *Debouncer) expire(key string, e *entry) {
	d.mu.Lock()
	current := d.pending[key] == e
	if current {
		delete(d.pending, key)
	}
	d.mu.Unlock()

	e.resolve(current)
}
