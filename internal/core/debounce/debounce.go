// Package debounce runs only the latest of a burst of calls and discards the
// results of calls that were overtaken by a newer one
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a call that a newer call replaced, either while
// it was waiting out the quiet window or while it was running
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

// Debouncer tracks a generation counter; each call bumps it and only the call
// holding the current generation may publish a result
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	gen     uint64
	pending chan struct{}
}

// New returns a Debouncer that waits for wait of quiet before running a call
func New(wait time.Duration) *Debouncer {
	if wait < 0 {
		wait = 0
	}
	return &Debouncer{wait: wait}
}

// Wait returns the quiet window
func (d *Debouncer) Wait() time.Duration { return d.wait }

// Generation returns the number of calls started so far
func (d *Debouncer) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// begin starts a new generation and cancels the pending one
func (d *Debouncer) begin() (uint64, <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.pending != nil {
		close(d.pending)
	}
	ch := make(chan struct{})
	d.pending = ch
	return d.gen, ch
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}

// Do waits out the quiet window then runs fn, unless a newer call arrives
// first. A result produced after a newer call started is dropped and
// ErrSuperseded is returned in its place.
func Do[T any](ctx context.Context, d *Debouncer, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	gen, cancelled := d.begin()

	t := time.NewTimer(d.wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-cancelled:
		return zero, ErrSuperseded
	case <-t.C:
	}

	v, err := fn(ctx)
	if !d.current(gen) {
		return zero, ErrSuperseded
	}
	return v, err
}
