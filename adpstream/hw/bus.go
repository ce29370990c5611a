package hw

// Bus is the hardware seen by the streaming kernel: a 32-bit register window
// plus DMA-visible memory reached through the CPU cache.
type Bus interface {
	// Read32 reads a register word.
	Read32(address uint32) uint32
	// Write32 writes a register word.
	Write32(address uint32, value uint32)

	// Slice returns the CPU view of length bytes of DMA-visible memory at address.
	// Writes through it are not observed by DMA until flushed.
	Slice(address uint32, length int) []byte
	// Flush writes back the CPU cache lines covering the range so DMA sees them.
	Flush(address uint32, length int)
	// Invalidate drops the CPU cache lines covering the range so the next CPU
	// access observes what DMA or another agent wrote.
	Invalidate(address uint32, length int)
}
