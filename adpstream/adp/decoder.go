package adp

import "github.com/valerio/go-adpstream/adpstream/bit"

// History holds the decoder accumulators carried from one block to the next:
// right previous, right before-previous, left previous, left before-previous.
type History [4]int32

// Reset zeroes all accumulators, as required at the start of a track.
func (h *History) Reset() {
	*h = History{}
}

// IsZero reports whether all accumulators are zero.
func (h *History) IsZero() bool {
	return *h == History{}
}

// Decoder decodes ADP blocks. The zero value is ready to use.
type Decoder struct{}

// DecodeBlock decodes one BlockSize block into SamplesPerBlock left and right
// samples, threading h through the call. block must be at least BlockSize bytes.
func (Decoder) DecodeBlock(block []byte, l, r *[SamplesPerBlock]int16, h *History) {
	_ = block[BlockSize-1]
	rh, lh := block[0], block[1]
	for j := range SamplesPerBlock {
		data := block[HeaderSize+j]
		r[j] = decodeSample(bit.Low(data), rh, &h[0], &h[1])
		l[j] = decodeSample(bit.High(data), lh, &h[2], &h[3])
	}
}

func decodeSample(nibble, header uint8, hist1, hist2 *int32) int16 {
	var hist int32
	if p := header >> 4; int(p) < len(predictors) {
		c := predictors[p]
		hist = *hist1*c[0] + *hist2*c[1]
	}
	hist = clamp((hist+0x20)>>6, histMin, histMax)

	cur := ((bit.SignExtend4(nibble) << 12) >> (header & 0x0F) << 6) + hist
	*hist2 = *hist1
	*hist1 = cur

	return int16(clamp(cur>>6, -0x8000, 0x7FFF))
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
