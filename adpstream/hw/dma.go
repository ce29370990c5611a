package hw

import (
	"encoding/binary"
	"log/slog"

	"github.com/valerio/go-adpstream/adpstream/addr"
)

// Output clocks selectable through the AI control register.
const (
	Rate48K = 48000
	Rate32K = 32000
)

// AudioDMA models the audio DMA engine draining the two stream regions.
//
// While the Streaming word is set it plays region 0 then region 1 and wraps,
// tracking its byte position in AIADPLoc. Each time a region is exhausted it
// asserts UpdateStream so the kernel refills it. Samples are big-endian
// interleaved 16-bit stereo.
type AudioDMA struct {
	board   *Board
	regions [2]uint32
	size    uint32

	frames    uint64
	underruns uint64
}

// NewAudioDMA creates a DMA engine over the default stream regions.
func NewAudioDMA(b *Board) *AudioDMA {
	return NewAudioDMAWith(b, addr.Buffer1, addr.Buffer2, addr.BufferSize)
}

// NewAudioDMAWith creates a DMA engine over two regions of size bytes each.
func NewAudioDMAWith(b *Board, region0, region1 uint32, size int) *AudioDMA {
	return &AudioDMA{
		board:   b,
		regions: [2]uint32{region0, region1},
		size:    uint32(size),
	}
}

// SampleRate returns the output clock currently selected on the board.
func (d *AudioDMA) SampleRate() int {
	return d.board.OutputRate()
}

// ReadFrames fills dst with interleaved stereo samples and returns the number of
// frames produced. Silence is produced while streaming is disabled.
func (d *AudioDMA) ReadFrames(dst []int16) int {
	b := d.board
	b.mu.Lock()
	defer b.mu.Unlock()

	frames := len(dst) / 2
	if b.regs[addr.Streaming] == 0 {
		clear(dst[:frames*2])
		return frames
	}

	loc := b.regs[addr.AIADPLoc]
	if loc >= 2*d.size {
		loc = 0
	}

	for i := range frames {
		r := loc / d.size
		off := d.regions[r] - b.ramBase + loc%d.size
		dst[2*i] = int16(binary.BigEndian.Uint16(b.dma[off:]))
		dst[2*i+1] = int16(binary.BigEndian.Uint16(b.dma[off+2:]))

		loc += 4
		if loc%d.size == 0 {
			if b.regs[addr.UpdateStream] != 0 {
				d.underruns++
				slog.Warn("Stream underrun", "region", r^1, "frames", d.frames+uint64(i))
			}
			b.regs[addr.UpdateStream] = 1
			if loc == 2*d.size {
				loc = 0
			}
		}
	}

	b.regs[addr.AIADPLoc] = loc
	d.frames += uint64(frames)
	return frames
}

// Underruns returns how many times a region was entered before the kernel
// acknowledged the previous refill request.
func (d *AudioDMA) Underruns() uint64 {
	d.board.mu.Lock()
	defer d.board.mu.Unlock()
	return d.underruns
}

// Frames returns the number of frames played while streaming was enabled.
func (d *AudioDMA) Frames() uint64 {
	d.board.mu.Lock()
	defer d.board.mu.Unlock()
	return d.frames
}
