package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/hw"
)

func TestDoubleBuffer_PublishFlushesBeforeFlip(t *testing.T) {
	bus := &traceBus{Board: hw.NewStreamBoard()}
	d := NewDoubleBuffer(bus, [2]uint32{addr.Buffer1, addr.Buffer2}, addr.BufferSize)

	var activeAtFlush []int
	bus.onFlush = func(uint32) { activeAtFlush = append(activeAtFlush, d.ActiveIndex()) }

	copy(d.Active(), []byte{0xAB, 0xCD})
	d.Publish()

	assert.Equal(t, []int{0}, activeAtFlush, "flush must see the region before the flip")
	assert.Equal(t, 1, d.ActiveIndex())
	assert.Equal(t, addr.Buffer2, d.ActiveAddress())
	assert.Equal(t, []byte{0xAB, 0xCD}, bus.DMABytes(addr.Buffer1, 2))
}

func TestDoubleBuffer_StrictAlternation(t *testing.T) {
	bus := &traceBus{Board: hw.NewStreamBoard()}
	d := NewDoubleBuffer(bus, [2]uint32{addr.Buffer1, addr.Buffer2}, addr.BufferSize)

	var seq []uint32
	for range 6 {
		seq = append(seq, d.ActiveAddress())
		d.Publish()
	}

	assert.Equal(t, []uint32{addr.Buffer1, addr.Buffer2, addr.Buffer1, addr.Buffer2, addr.Buffer1, addr.Buffer2}, seq)
	assert.Equal(t, uint64(6), d.Flips())

	d.Reset()
	assert.Equal(t, 0, d.ActiveIndex())
}

func TestDoubleBuffer_Clear(t *testing.T) {
	b := hw.NewStreamBoard()
	d := NewDoubleBuffer(b, [2]uint32{addr.Buffer1, addr.Buffer2}, addr.BufferSize)

	for range 2 {
		copy(d.Active(), []byte{1, 2, 3})
		d.Publish()
	}
	d.Clear()

	assert.Equal(t, []byte{0, 0, 0}, b.DMABytes(addr.Buffer1, 3))
	assert.Equal(t, []byte{0, 0, 0}, b.DMABytes(addr.Buffer2, 3))
	assert.Equal(t, []byte{0, 0, 0}, d.Active()[:3])
}
