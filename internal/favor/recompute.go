package favor

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiet window edits must clear before a
// recompute actually runs.
const DefaultDebounceWindow = 300 * time.Millisecond

// Recomputer coalesces bursts of edits into a single projection pass. Every
// mutation requests a recompute instead of computing inline; a request
// arriving while one is pending supersedes it, so only the latest input is
// computed once the quiet window elapses.
type Recomputer struct {
	window  time.Duration
	results chan Projection

	mu      sync.Mutex
	timer   *time.Timer
	pending func() Projection
	closed  bool
}

// NewRecomputer creates a Recomputer. A non-positive window falls back to
// DefaultDebounceWindow.
func NewRecomputer(window time.Duration) *Recomputer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Recomputer{
		window:  window,
		results: make(chan Projection, 1),
	}
}

// Trigger schedules compute to run after the quiet window, replacing any
// recompute still pending.
func (rc *Recomputer) Trigger(compute func() Projection) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.closed {
		return
	}
	rc.pending = compute
	if rc.timer != nil {
		rc.timer.Stop()
	}
	rc.timer = time.AfterFunc(rc.window, rc.fire)
}

func (rc *Recomputer) fire() {
	rc.mu.Lock()
	compute := rc.pending
	rc.pending = nil
	rc.timer = nil
	closed := rc.closed
	rc.mu.Unlock()

	if closed || compute == nil {
		return
	}
	proj := compute()

	// Keep only the newest result: drain a stale undelivered one first.
	select {
	case <-rc.results:
	default:
	}
	select {
	case rc.results <- proj:
	default:
	}
}

// Results delivers completed projections. A result not yet consumed is
// replaced by a newer one.
func (rc *Recomputer) Results() <-chan Projection {
	return rc.results
}

// Close cancels any pending recompute. Pending work is dropped, not flushed.
func (rc *Recomputer) Close() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.closed = true
	rc.pending = nil
	if rc.timer != nil {
		rc.timer.Stop()
		rc.timer = nil
	}
}
