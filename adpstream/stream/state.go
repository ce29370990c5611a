package stream

import "fmt"

// Phase is the controller state.
type Phase uint8

const (
	// Idle: no track, or stopped.
	Idle Phase = iota
	// Priming: filling both regions before the DMA engine is enabled.
	Priming
	// Playing: one chunk refilled per consumer request.
	Playing
	// Draining: the last chunk of a non-looping track has been published; the
	// next request stops playback.
	Draining
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Priming:
		return "priming"
	case Playing:
		return "playing"
	case Draining:
		return "draining"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// State holds the bounds and position of the current track. Offsets are
// absolute byte offsets on disc.
type State struct {
	Start     uint32
	Size      uint32
	Current   uint32 // next offset to fetch, 0 when stopped
	EndOffset uint32 // Start + Size
	Loop      bool
	Ended     bool // latched when a non-looping track crossed its end
}

// Snapshot is a read-only view of a Stream.
type Snapshot struct {
	State        State
	Phase        Phase
	Chunk        ChunkConfig
	ActiveRegion int
	Published    uint64 // chunks decoded and handed to hardware
	Loops        uint64 // loop restarts since the last Start
}

// Progress returns how far into the track the next fetch is, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.State.Size == 0 || s.State.Current < s.State.Start {
		return 0
	}
	p := float64(s.State.Current-s.State.Start) / float64(s.State.Size)
	return min(p, 1)
}
