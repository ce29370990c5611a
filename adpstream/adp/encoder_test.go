package adp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeBlock_SilenceEncodesToZeroResiduals(t *testing.T) {
	var l, r [SamplesPerBlock]int16
	var h History
	dst := make([]byte, BlockSize)

	EncodeBlock(dst, &l, &r, &h)

	for i := HeaderSize; i < BlockSize; i++ {
		assert.Equal(t, byte(0), dst[i], "byte %d", i)
	}
	assert.True(t, h.IsZero())
}

func TestEncodeBlock_HistoryMatchesDecoder(t *testing.T) {
	var enc, dec History
	block := make([]byte, BlockSize)

	for b := range 40 {
		var l, r [SamplesPerBlock]int16
		for j := range SamplesPerBlock {
			n := float64(b*SamplesPerBlock + j)
			l[j] = int16(8000 * math.Sin(2*math.Pi*440*n/SampleRate))
			r[j] = int16(6000 * math.Sin(2*math.Pi*660*n/SampleRate))
		}

		EncodeBlock(block, &l, &r, &enc)

		var dl, dr [SamplesPerBlock]int16
		Decoder{}.DecodeBlock(block, &dl, &dr, &dec)
		assert.Equal(t, enc, dec, "block %d: encoder and decoder state diverged", b)

		if b < 2 {
			// the first blocks start from an empty history
			continue
		}
		for j := range SamplesPerBlock {
			assert.InDelta(t, l[j], dl[j], 400, "block %d left %d", b, j)
			assert.InDelta(t, r[j], dr[j], 400, "block %d right %d", b, j)
		}
	}
}

func TestEncodeBlock_HeaderRepeated(t *testing.T) {
	var l, r [SamplesPerBlock]int16
	for j := range SamplesPerBlock {
		l[j] = int16(j * 100)
		r[j] = int16(-j * 50)
	}
	var h History
	dst := make([]byte, BlockSize)

	EncodeBlock(dst, &l, &r, &h)

	assert.Equal(t, dst[0], dst[2])
	assert.Equal(t, dst[1], dst[3])
	assert.LessOrEqual(t, dst[0]>>4, uint8(3))
	assert.LessOrEqual(t, dst[0]&0x0F, uint8(maxShift))
}
