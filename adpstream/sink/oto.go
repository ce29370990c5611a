//go:build oto

package sink

import (
	"encoding/binary"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoLatencyFrames sizes the ring between the poll loop and oto's pull callback.
const otoLatencyFrames = 8192

// OtoDevice plays frames through oto, which pulls them from a ring buffer.
type OtoDevice struct {
	ctx    *oto.Context
	player *oto.Player
	ring   *Ring

	mu      sync.Mutex // guards scratch, used from oto's goroutine
	scratch []int16
}

// NewOtoDevice opens the default oto output at rate Hz.
func NewOtoDevice(rate int) (*OtoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	d := &OtoDevice{ctx: ctx, ring: NewRing(otoLatencyFrames)}
	d.player = ctx.NewPlayer(d)
	d.player.Play()

	slog.Info("oto audio device opened", "rate", rate)
	return d, nil
}

// Read implements io.Reader for the oto player.
func (d *OtoDevice) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(p) / 2
	if cap(d.scratch) < n {
		d.scratch = make([]int16, n)
	}
	samples := d.scratch[:n]
	d.ring.Read(samples)

	for i, v := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(v))
	}
	return n * 2, nil
}

func (d *OtoDevice) Queued() int {
	return d.ring.Frames()
}

func (d *OtoDevice) Queue(frames []int16) error {
	if len(frames)%2 != 0 {
		return ErrOddSamples
	}
	if n := d.ring.Write(frames); n < len(frames) {
		slog.Debug("oto ring full, dropping frames", "dropped", (len(frames)-n)/2)
	}
	return nil
}

func (d *OtoDevice) Close() error {
	return d.player.Close()
}
