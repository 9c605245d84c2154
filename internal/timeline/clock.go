package timeline

import "sync/atomic"

// Clock hands out post sequence numbers for a single timeline.
//
// Sequence numbers are the only ordering key for posts. Wall-clock time is
// never consulted, so two runs of the same command stream produce identical
// timelines.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next() returns 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first Next() returns start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the current sequence number and advances the clock.
// Each value is handed out exactly once.
func (c *Clock) Next() int64 {
	return c.seq.Add(1) - 1
}

// Current returns the sequence number the next call to Next will return.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
