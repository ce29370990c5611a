package timing

import (
	"time"

	"github.com/valerio/go-adpstream/adpstream/addr"
)

// bytesPerFrame is one interleaved 16-bit stereo pair.
const bytesPerFrame = 4

// RegionFrames is the number of stereo frames in one output region.
func RegionFrames() int {
	return addr.BufferSize / bytesPerFrame
}

// RegionDuration returns how long the DMA engine takes to drain one output
// region at the given output rate.
func RegionDuration(rate int) time.Duration {
	return time.Duration(float64(RegionFrames()) / float64(rate) * float64(time.Second))
}

// FramesPerTick returns how many frames the DMA engine consumes per poll
// interval at rate, rounded up so playback never falls behind.
func FramesPerTick(rate int, interval time.Duration) int {
	return int((int64(rate)*int64(interval) + int64(time.Second) - 1) / int64(time.Second))
}

// Headroom returns how many poll intervals fit in one region drain. A refill
// cycle has that many polls to notice the request and complete.
func Headroom(rate int, interval time.Duration) int {
	if interval <= 0 {
		return 0
	}
	return int(RegionDuration(rate) / interval)
}
