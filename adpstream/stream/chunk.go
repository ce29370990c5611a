package stream

import "github.com/valerio/go-adpstream/adpstream/adp"

// BlockDecoder decodes one adp.BlockSize block into left and right samples,
// threading the decoder history.
type BlockDecoder interface {
	DecodeBlock(block []byte, l, r *[adp.SamplesPerBlock]int16, h *adp.History)
}

// chunkDecoder decodes a staging buffer block by block, handing every block to
// the active writer before decoding the next one.
type chunkDecoder struct {
	dec  BlockDecoder
	hist adp.History
	l, r [adp.SamplesPerBlock]int16
}

func (c *chunkDecoder) reset() {
	c.hist.Reset()
}

// decode writes src into dst from offset 0 and returns the bytes written.
// len(src) is a multiple of adp.BlockSize.
func (c *chunkDecoder) decode(src []byte, w SampleWriter, dst []byte) int {
	pos := 0
	for i := 0; i+adp.BlockSize <= len(src); i += adp.BlockSize {
		c.dec.DecodeBlock(src[i:i+adp.BlockSize], &c.l, &c.r, &c.hist)
		pos = w.Write(dst, pos, &c.l, &c.r)
	}
	return pos
}
