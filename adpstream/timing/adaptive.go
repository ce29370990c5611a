package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter uses precise timing with drift compensation.
// Combines sleep for efficiency with busy-waiting for accuracy.
type AdaptiveLimiter struct {
	target      time.Duration
	nextTick    time.Time
	tickCounter int64
	now         func() time.Time
	sleep       func(time.Duration)
}

func NewAdaptiveLimiter(interval time.Duration) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		target:   interval,
		nextTick: time.Now(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

func (a *AdaptiveLimiter) WaitForNextTick() {
	now := a.now()
	sleepTime := a.nextTick.Sub(now)

	if sleepTime > 0 {
		if sleepTime >= 2*time.Millisecond {
			a.sleep(sleepTime - time.Millisecond)
		}
		for a.now().Before(a.nextTick) {
			// busy-wait the last millisecond, higher accuracy.
		}
	} else if sleepTime < -5*a.target {
		// far behind (e.g. a slow disc read): drop the backlog instead of bursting
		slog.Debug("Poll loop behind schedule", "behind_ms", (-sleepTime).Milliseconds())
		a.nextTick = now
	}

	a.nextTick = a.nextTick.Add(a.target)
	a.tickCounter++
}

func (a *AdaptiveLimiter) Reset() {
	a.nextTick = a.now()
	a.tickCounter = 0
}

// Ticks returns the number of completed waits since the last reset.
func (a *AdaptiveLimiter) Ticks() int64 {
	return a.tickCounter
}
