package engine

import "sync/atomic"

// Sequencer numbers search expansions. Implementations must hand out
// strictly increasing values from Next. Clock is the production
// implementation; tests may substitute a rewindable one.
type Sequencer interface {
	// Next returns the next sequence number.
	Next() int64
	// Current reports the latest issued number without advancing.
	Current() int64
}

// Clock provides a monotonic logical counter numbering search expansions.
//
// Every applied move is stamped with a strictly increasing seq number.
// This ensures:
// - Deterministic ordering of trace output (no wall-clock involvement)
// - Identical runs produce identical expansion logs
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// However, the engine's single-threaded traversal means only one
// goroutine typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
