package ui

import "time"

// Position is a canvas-local point carried by move commands.
type Position struct {
	X int
	Y int
}

// Throttler rate-limits a stream of positions to at most one emission per
// interval, trailing edge: while positions keep arriving inside a window only
// the most recent one survives, and a position identical to the last emitted
// one is suppressed entirely. Time is always passed in by the caller, so the
// component stays deterministic under test.
type Throttler struct {
	interval    time.Duration
	lastEmitAt  time.Time
	lastEmitted Position
	emittedAny  bool
	pending     Position
	hasPending  bool
}

// NewThrottler returns a throttler whose first window opens at now.
func NewThrottler(interval time.Duration, now time.Time) *Throttler {
	return &Throttler{interval: interval, lastEmitAt: now}
}

// Offer records a candidate position. Offering the last emitted position
// cancels any pending emission instead of scheduling one.
func (t *Throttler) Offer(p Position) {
	if t.emittedAny && p == t.lastEmitted {
		t.hasPending = false
		return
	}
	t.pending = p
	t.hasPending = true
}

// Flush emits the pending position if the current window has elapsed.
func (t *Throttler) Flush(now time.Time) (Position, bool) {
	if !t.hasPending || now.Sub(t.lastEmitAt) < t.interval {
		return Position{}, false
	}
	return t.emit(now), true
}

// FlushPending emits the pending position regardless of the window. Used
// when a drag ends and the final position must not be lost.
func (t *Throttler) FlushPending(now time.Time) (Position, bool) {
	if !t.hasPending {
		return Position{}, false
	}
	return t.emit(now), true
}

// Reset drops the pending position and the duplicate-suppression history.
// Called when a drag ends, so nothing from one drag can leak into the next.
func (t *Throttler) Reset() {
	t.hasPending = false
	t.emittedAny = false
	t.lastEmitted = Position{}
}

func (t *Throttler) emit(now time.Time) Position {
	t.lastEmitAt = now
	t.lastEmitted = t.pending
	t.emittedAny = true
	t.hasPending = false
	return t.lastEmitted
}
