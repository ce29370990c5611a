package timing

import "time"

// Limiter paces the poll loop.
type Limiter interface {
	// WaitForNextTick blocks until it's time for the next poll.
	// Returns immediately if timing is behind schedule.
	WaitForNextTick()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextTick() {}
func (n *noOpLimiter) Reset()           {}

// PollInterval is the default cadence of the poll loop. It has to stay well
// below the time one output region takes to drain.
const PollInterval = 4 * time.Millisecond
