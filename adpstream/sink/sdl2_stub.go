//go:build !sdl2

package sink

import "fmt"

// SDL2Device stub for when SDL2 is not available
type SDL2Device struct{}

func NewSDL2Device(rate int) (*SDL2Device, error) {
	return nil, fmt.Errorf("%w: sdl2 - compile with -tags sdl2 and install SDL2 development libraries", ErrUnavailable)
}

func (s *SDL2Device) Queued() int                { return 0 }
func (s *SDL2Device) Queue(frames []int16) error { return ErrUnavailable }
func (s *SDL2Device) Close() error               { return nil }
