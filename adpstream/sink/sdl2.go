//go:build sdl2

package sink

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL2Device plays frames through an SDL2 queued audio device.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stub, see build tags (sdl2)
type SDL2Device struct {
	dev sdl.AudioDeviceID
	buf []byte
}

// NewSDL2Device opens the default SDL2 output at rate Hz.
func NewSDL2Device(rate int) (*SDL2Device, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL2 audio: %v", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to open audio device: %v", err)
	}
	sdl.PauseAudioDevice(dev, false)

	slog.Info("SDL2 audio device opened", "rate", rate)
	return &SDL2Device{dev: dev}, nil
}

func (s *SDL2Device) Queued() int {
	return int(sdl.GetQueuedAudioSize(s.dev)) / 4
}

func (s *SDL2Device) Queue(frames []int16) error {
	if len(frames)%2 != 0 {
		return ErrOddSamples
	}
	if cap(s.buf) < len(frames)*2 {
		s.buf = make([]byte, len(frames)*2)
	}
	s.buf = s.buf[:len(frames)*2]
	for i, v := range frames {
		binary.LittleEndian.PutUint16(s.buf[i*2:], uint16(v))
	}
	return sdl.QueueAudio(s.dev, s.buf)
}

func (s *SDL2Device) Close() error {
	sdl.CloseAudioDevice(s.dev)
	sdl.Quit()
	return nil
}
