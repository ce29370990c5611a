package stream

import (
	"encoding/binary"

	"github.com/valerio/go-adpstream/adpstream/adp"
)

// SampleWriter appends one decoded block to an output region as big-endian
// interleaved 16-bit stereo.
type SampleWriter interface {
	// Mode identifies the variant.
	Mode() Mode
	// Reset drops any state carried between blocks.
	Reset()
	// Write appends the pairs in l and r to dst starting at pos and returns
	// the advanced position.
	Write(dst []byte, pos int, l, r *[adp.SamplesPerBlock]int16) int
}

func newWriter(m Mode) SampleWriter {
	if m == Downsample {
		return &DownsampleWriter{}
	}
	return DirectWriter{}
}

func putPair(dst []byte, pos int, l, r int16) int {
	binary.BigEndian.PutUint16(dst[pos:], uint16(l))
	binary.BigEndian.PutUint16(dst[pos+2:], uint16(r))
	return pos + 4
}

// DirectWriter writes every pair unchanged.
type DirectWriter struct{}

func (DirectWriter) Mode() Mode { return FullRate }
func (DirectWriter) Reset()     {}

func (DirectWriter) Write(dst []byte, pos int, l, r *[adp.SamplesPerBlock]int16) int {
	for j := range adp.SamplesPerBlock {
		pos = putPair(dst, pos, l[j], r[j])
	}
	return pos
}

// DownsampleWriter emits two pairs for every three it receives: the first as
// is, then the mean of the second and third. The held-back pair and the cycle
// position carry over between blocks.
type DownsampleWriter struct {
	counter        int
	carryL, carryR int16
}

func (*DownsampleWriter) Mode() Mode { return Downsample }

func (w *DownsampleWriter) Reset() {
	w.counter = 0
	w.carryL, w.carryR = 0, 0
}

func (w *DownsampleWriter) Write(dst []byte, pos int, l, r *[adp.SamplesPerBlock]int16) int {
	for j := range adp.SamplesPerBlock {
		w.counter++
		switch w.counter {
		case 2:
			w.carryL, w.carryR = l[j], r[j]
		case 3:
			pos = putPair(dst, pos, average(l[j], w.carryL), average(r[j], w.carryR))
			w.counter = 0
		default:
			pos = putPair(dst, pos, l[j], r[j])
		}
	}
	return pos
}

// average truncates towards negative infinity, like an arithmetic shift.
func average(a, b int16) int16 {
	return int16((int32(a) + int32(b)) >> 1)
}
