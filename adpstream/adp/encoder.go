package adp

import "math"

// maxShift is the largest scale shift the encoder tries; larger shifts can
// only express a residual of zero.
const maxShift = 12

// EncodeBlock packs SamplesPerBlock stereo pairs into one BlockSize block,
// updating h exactly as a Decoder would when decoding the result.
//
// Every predictor/shift combination is tried per channel and the one with the
// lowest squared error kept.
func EncodeBlock(dst []byte, l, r *[SamplesPerBlock]int16, h *History) {
	_ = dst[BlockSize-1]
	for i := HeaderSize; i < BlockSize; i++ {
		dst[i] = 0
	}

	rh, rn := encodeChannel(r, &h[0], &h[1])
	lh, ln := encodeChannel(l, &h[2], &h[3])

	dst[0], dst[2] = rh, rh
	dst[1], dst[3] = lh, lh
	for j := range SamplesPerBlock {
		dst[HeaderSize+j] = rn[j]&0x0F | ln[j]<<4
	}
}

func encodeChannel(src *[SamplesPerBlock]int16, hist1, hist2 *int32) (uint8, [SamplesPerBlock]uint8) {
	var (
		bestHeader  uint8
		bestNibbles [SamplesPerBlock]uint8
		bestErr     = math.Inf(1)
		bestH1      int32
		bestH2      int32
	)

	for p := range len(predictors) {
		for s := 0; s <= maxShift; s++ {
			header := uint8(p<<4 | s)
			h1, h2 := *hist1, *hist2
			var nibbles [SamplesPerBlock]uint8
			var sqErr float64

			for j, x := range src {
				n := chooseNibble(x, header, h1, h2)
				out := decodeSample(n, header, &h1, &h2)
				nibbles[j] = n
				d := float64(out) - float64(x)
				sqErr += d * d
			}

			if sqErr < bestErr {
				bestErr = sqErr
				bestHeader = header
				bestNibbles = nibbles
				bestH1, bestH2 = h1, h2
			}
		}
	}

	*hist1, *hist2 = bestH1, bestH2
	return bestHeader, bestNibbles
}

// chooseNibble picks the residual closest to x given the decoder state.
func chooseNibble(x int16, header uint8, h1, h2 int32) uint8 {
	var hist int32
	c := predictors[header>>4]
	hist = clamp((h1*c[0]+h2*c[1]+0x20)>>6, histMin, histMax)

	step := float64(int32(1) << (12 - (header & 0x0F) + 6))
	n := math.Round((float64(int32(x)<<6) - float64(hist)) / step)
	n = math.Max(-8, math.Min(7, n))

	return uint8(int8(n)) & 0x0F
}
