package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-adpstream/adpstream/adp"
)

func TestChunkDecoder_DecodesEveryBlockInOrder(t *testing.T) {
	dec := &tagDecoder{}
	c := chunkDecoder{dec: dec}

	src := taggedImage(4 * adp.BlockSize)
	dst := make([]byte, 4*adp.SamplesPerBlock*4)

	n := c.decode(src, DirectWriter{}, dst)

	assert.Equal(t, len(dst), n)
	assert.Len(t, dec.blocks, 4)
	for i, b := range dec.blocks {
		assert.Equal(t, src[i*adp.BlockSize:(i+1)*adp.BlockSize], b)
	}
	assert.Equal(t, int32(4), c.hist[0], "history threads through every block")

	lefts := readPairs(dst, 4*adp.SamplesPerBlock)
	assert.Equal(t, int16(tagAt(3*adp.BlockSize)), lefts[3*adp.SamplesPerBlock].l)
}

func TestChunkDecoder_HistoryPersistsUntilReset(t *testing.T) {
	c := chunkDecoder{dec: &tagDecoder{}}
	src := taggedImage(2 * adp.BlockSize)
	dst := make([]byte, 2*adp.SamplesPerBlock*4)

	c.decode(src, DirectWriter{}, dst)
	c.decode(src, DirectWriter{}, dst)
	assert.Equal(t, int32(4), c.hist[0])

	c.reset()
	assert.True(t, c.hist.IsZero())
}

func TestChunkDecoder_DownsampleWritesFewerBytes(t *testing.T) {
	c := chunkDecoder{dec: &tagDecoder{}}
	src := taggedImage(3 * adp.BlockSize)
	dst := make([]byte, 3*adp.SamplesPerBlock*4)

	n := c.decode(src, &DownsampleWriter{}, dst)

	assert.Equal(t, 2*adp.SamplesPerBlock*4, n)
}
