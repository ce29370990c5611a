package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegionDuration(t *testing.T) {
	assert.Equal(t, 12544, RegionFrames())
	assert.InDelta(t, 261.33, float64(RegionDuration(48000))/float64(time.Millisecond), 0.01)
	assert.InDelta(t, 392.0, float64(RegionDuration(32000))/float64(time.Millisecond), 0.01)
}

func TestFramesPerTick(t *testing.T) {
	assert.Equal(t, 192, FramesPerTick(48000, 4*time.Millisecond))
	assert.Equal(t, 128, FramesPerTick(32000, 4*time.Millisecond))
	assert.Equal(t, 1, FramesPerTick(48000, time.Microsecond), "rounds up")
}

func TestHeadroom(t *testing.T) {
	assert.Equal(t, 65, Headroom(48000, PollInterval))
	assert.Equal(t, 0, Headroom(48000, 0))
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for range 1000 {
		l.WaitForNextTick()
	}
	l.Reset()
	assert.Less(t, time.Since(start), time.Second)
}

func TestAdaptiveLimiter_SleepsUntilNextTick(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept []time.Duration

	a := NewAdaptiveLimiter(10 * time.Millisecond)
	a.now = func() time.Time { return clock }
	a.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock = clock.Add(d + time.Millisecond)
	}
	a.Reset()

	a.WaitForNextTick() // first tick is due immediately
	a.WaitForNextTick()

	assert.Equal(t, []time.Duration{9 * time.Millisecond}, slept)
	assert.Equal(t, int64(2), a.Ticks())
}

func TestAdaptiveLimiter_DropsBacklog(t *testing.T) {
	clock := time.Unix(0, 0)

	a := NewAdaptiveLimiter(time.Millisecond)
	a.now = func() time.Time { return clock }
	a.sleep = func(d time.Duration) { clock = clock.Add(d) }
	a.Reset()

	clock = clock.Add(time.Second)
	a.WaitForNextTick()

	assert.Equal(t, clock.Add(time.Millisecond), a.nextTick)
}

func TestTickerLimiter(t *testing.T) {
	l := NewTickerLimiter(time.Millisecond)
	defer l.Stop()

	start := time.Now()
	l.WaitForNextTick()
	l.WaitForNextTick()
	l.Reset()

	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
