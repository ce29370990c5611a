package sink

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend = errors.New("unknown audio backend")
	ErrUnavailable    = errors.New("audio backend not available")
	ErrOddSamples     = errors.New("interleaved stereo needs an even sample count")
)

// Device is a real-time output consuming interleaved 16-bit stereo frames.
type Device interface {
	// Queued returns the number of frames accepted but not yet played.
	Queued() int
	// Queue appends frames for playback.
	Queue(frames []int16) error
	Close() error
}

// Backends lists the names accepted by Open.
var Backends = []string{"sdl2", "oto"}

// Open opens the named playback backend at rate Hz.
func Open(backend string, rate int) (Device, error) {
	switch backend {
	case "sdl2":
		d, err := NewSDL2Device(rate)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "oto":
		d, err := NewOtoDevice(rate)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Frame is one stereo pair.
type Frame struct {
	L, R int16
}

// Peak returns the largest absolute sample per channel in interleaved frames.
func Peak(frames []int16) Frame {
	var p Frame
	for i := 0; i+1 < len(frames); i += 2 {
		p.L = max(p.L, abs16(frames[i]))
		p.R = max(p.R, abs16(frames[i+1]))
	}
	return p
}

func abs16(v int16) int16 {
	if v == -32768 {
		return 32767
	}
	if v < 0 {
		return -v
	}
	return v
}
