package addr

// Audio interface registers.
const (
	// AICR is the audio interface control register.
	//  - Bit 6 (AICR32K): 1 = DMA output clocked at 32 kHz, 0 = 48 kHz.
	AICR uint32 = 0x0D806C00
)

// AICR32K is the bit index in AICR selecting 32 kHz DMA output.
const AICR32K = 6

// Stream mailbox words shared between the streaming kernel and the
// guest-side audio patch. Each word sits on its own 32 byte cache line.
const (
	// MailboxStart is the first byte of the mailbox window.
	MailboxStart uint32 = 0x13026580
	// Streaming is non-zero while the DMA engine should drain the stream buffers.
	Streaming uint32 = 0x13026580
	// UpdateStream is asserted by the consumer when a buffer region has been drained
	// and must be refilled. The kernel clears it after each refill.
	UpdateStream uint32 = 0x130265A0
	// AIADPLoc holds the DMA read position, in bytes, across both stream buffers.
	AIADPLoc uint32 = 0x130265C0
	// MailboxEnd is one past the last byte of the mailbox window.
	MailboxEnd uint32 = 0x130265E0

	// CacheLine is the flush/invalidate granularity of the mailbox words.
	CacheLine uint32 = 0x20
)

// Stream buffers, DMA-visible memory.
const (
	// StreamRAMStart is the base of the DMA-visible memory holding both output regions.
	StreamRAMStart uint32 = 0x13280000
	// Buffer1 is the first output region.
	Buffer1 uint32 = 0x13280000
	// Buffer2 is the second output region.
	Buffer2 uint32 = 0x1328C400
	// BufferSize is the size in bytes of each output region.
	BufferSize = 0xC400
	// StreamRAMSize covers both regions.
	StreamRAMSize = 2 * BufferSize
)

// Registers lists every 32-bit word exposed by the register window.
var Registers = []uint32{AICR, Streaming, UpdateStream, AIADPLoc}
