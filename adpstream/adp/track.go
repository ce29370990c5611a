package adp

// Encode compresses interleaved stereo frames into consecutive blocks,
// starting from an empty history. The last block is padded with silence.
func Encode(frames []int16) []byte {
	pairs := len(frames) / 2
	blocks := (pairs + SamplesPerBlock - 1) / SamplesPerBlock
	out := make([]byte, blocks*BlockSize)

	var (
		h    History
		l, r [SamplesPerBlock]int16
	)
	for b := range blocks {
		l, r = [SamplesPerBlock]int16{}, [SamplesPerBlock]int16{}
		for j := range SamplesPerBlock {
			p := b*SamplesPerBlock + j
			if p >= pairs {
				break
			}
			l[j], r[j] = frames[2*p], frames[2*p+1]
		}
		EncodeBlock(out[b*BlockSize:], &l, &r, &h)
	}
	return out
}

// Decode expands consecutive blocks into interleaved stereo frames, starting
// from an empty history. A trailing partial block is ignored.
func Decode(src []byte) []int16 {
	blocks := len(src) / BlockSize
	out := make([]int16, 0, blocks*SamplesPerBlock*2)

	var (
		dec  Decoder
		h    History
		l, r [SamplesPerBlock]int16
	)
	for b := range blocks {
		dec.DecodeBlock(src[b*BlockSize:(b+1)*BlockSize], &l, &r, &h)
		for j := range SamplesPerBlock {
			out = append(out, l[j], r[j])
		}
	}
	return out
}
