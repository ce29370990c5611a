package stream

import "github.com/valerio/go-adpstream/adpstream/hw"

// DoubleBuffer rotates between two output regions in DMA-visible memory. The
// active region is the one being written; the other is assumed to be draining.
type DoubleBuffer struct {
	bus     hw.Bus
	regions [2]uint32
	size    int
	active  int
	flips   uint64
}

// NewDoubleBuffer creates a double buffer over two regions of size bytes.
func NewDoubleBuffer(bus hw.Bus, regions [2]uint32, size int) *DoubleBuffer {
	return &DoubleBuffer{bus: bus, regions: regions, size: size}
}

// Active returns the CPU view of the region being written.
func (d *DoubleBuffer) Active() []byte {
	return d.bus.Slice(d.regions[d.active], d.size)
}

// ActiveIndex returns 0 or 1.
func (d *DoubleBuffer) ActiveIndex() int {
	return d.active
}

// ActiveAddress returns the base address of the region being written.
func (d *DoubleBuffer) ActiveAddress() uint32 {
	return d.regions[d.active]
}

// Publish writes the active region back from the CPU cache and makes the other
// region active. The flush always precedes the flip.
func (d *DoubleBuffer) Publish() {
	d.bus.Flush(d.regions[d.active], d.size)
	d.active ^= 1
	d.flips++
}

// Reset makes region 0 active.
func (d *DoubleBuffer) Reset() {
	d.active = 0
}

// Clear zeroes both regions and writes them back.
func (d *DoubleBuffer) Clear() {
	for _, r := range d.regions {
		clear(d.bus.Slice(r, d.size))
		d.bus.Flush(r, d.size)
	}
}

// Flips returns how many regions have been published.
func (d *DoubleBuffer) Flips() uint64 {
	return d.flips
}
