package stream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/adp"
	"github.com/valerio/go-adpstream/adpstream/hw"
)

// tagAt is the byte stored at every position of the block containing off.
func tagAt(off uint32) byte {
	return byte((off/adp.BlockSize)%251 + 1)
}

func taggedImage(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = tagAt(uint32(i))
	}
	return data
}

// tagDecoder writes byte 0 of each block to every left sample and byte 1 to
// every right sample, and counts calls in the first history slot.
type tagDecoder struct {
	blocks [][]byte
}

func (d *tagDecoder) DecodeBlock(block []byte, l, r *[adp.SamplesPerBlock]int16, h *adp.History) {
	d.blocks = append(d.blocks, append([]byte(nil), block...))
	for j := range adp.SamplesPerBlock {
		l[j] = int16(block[0])
		r[j] = int16(block[1])
	}
	h[0]++
}

type countingDisc struct {
	r     *bytes.Reader
	reads []int64
	fail  error
}

func (d *countingDisc) ReadAt(p []byte, off int64) (int, error) {
	d.reads = append(d.reads, off)
	if d.fail != nil {
		return 0, d.fail
	}
	return d.r.ReadAt(p, off)
}

// traceBus records register writes and flushes in order.
type traceBus struct {
	*hw.Board
	events  []string
	onFlush func(address uint32)
}

func (b *traceBus) Write32(address uint32, value uint32) {
	b.events = append(b.events, fmt.Sprintf("write %08X=%d", address, value))
	b.Board.Write32(address, value)
}

func (b *traceBus) Flush(address uint32, length int) {
	if b.onFlush != nil {
		b.onFlush(address)
	}
	b.events = append(b.events, fmt.Sprintf("flush %08X", address))
	b.Board.Flush(address, length)
}

func (b *traceBus) index(event string) int {
	for i, e := range b.events {
		if e == event {
			return i
		}
	}
	return -1
}

type fixture struct {
	stream  *Stream
	board   *hw.Board
	bus     *traceBus
	disc    *countingDisc
	decoder *tagDecoder
}

func newFixture(t *testing.T, imageSize int, opts ...Option) *fixture {
	t.Helper()

	board := hw.NewStreamBoard()
	bus := &traceBus{Board: board}
	disc := &countingDisc{r: bytes.NewReader(taggedImage(imageSize))}
	dec := &tagDecoder{}

	s, err := New(bus, disc, append([]Option{WithDecoder(dec)}, opts...)...)
	require.NoError(t, err)

	return &fixture{stream: s, board: board, bus: bus, disc: disc, decoder: dec}
}

// request simulates the consumer asking for a refill and polls once.
func (f *fixture) request(t *testing.T) {
	t.Helper()
	f.board.Write32(addr.UpdateStream, 1)
	require.NoError(t, f.stream.Poll())
}

// regionPairs decodes the DMA view of a region into left samples.
func regionLefts(board *hw.Board, region uint32, pairs int) []int16 {
	raw := board.DMABytes(region, pairs*4)
	out := make([]int16, pairs)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(raw[i*4:]))
	}
	return out
}

// expectedLefts is what a full-rate chunk read at offset produces with the tag
// decoder when only the first valid bytes are real track data.
func expectedLefts(offset uint32, chunk, valid int) []int16 {
	out := make([]int16, 0, chunk/adp.BlockSize*adp.SamplesPerBlock)
	for b := 0; b < chunk; b += adp.BlockSize {
		tag := int16(0)
		if b < valid {
			tag = int16(tagAt(offset + uint32(b)))
		}
		for range adp.SamplesPerBlock {
			out = append(out, tag)
		}
	}
	return out
}
