package hw

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/bit"
)

type region uint8

const (
	regionNone region = iota
	regionRegisters
	regionRAM
)

// Board is an in-process implementation of Bus: a register file and a block of
// DMA-visible RAM with separate CPU (cached) and DMA (physical) views.
//
// It is safe for concurrent use: the streaming kernel and the DMA consumer may
// run on different goroutines.
type Board struct {
	mu sync.Mutex

	regs    map[uint32]uint32
	ramBase uint32
	cpu     []byte
	dma     []byte

	flushes uint64
}

// NewBoard creates a board exposing the registers in addr.Registers and
// ramSize bytes of DMA-visible memory starting at ramBase.
func NewBoard(ramBase uint32, ramSize int) *Board {
	b := &Board{
		regs:    make(map[uint32]uint32, len(addr.Registers)),
		ramBase: ramBase,
		cpu:     make([]byte, ramSize),
		dma:     make([]byte, ramSize),
	}
	for _, r := range addr.Registers {
		b.regs[r] = 0
	}
	return b
}

// NewStreamBoard creates a board laid out for the default stream buffers.
func NewStreamBoard() *Board {
	return NewBoard(addr.StreamRAMStart, addr.StreamRAMSize)
}

func (b *Board) regionOf(address uint32, length int) region {
	if _, ok := b.regs[address]; ok {
		return regionRegisters
	}
	if address >= addr.MailboxStart && address+uint32(length) <= addr.MailboxEnd {
		return regionRegisters
	}
	if address >= b.ramBase && uint64(address)+uint64(length) <= uint64(b.ramBase)+uint64(len(b.cpu)) {
		return regionRAM
	}
	return regionNone
}

func (b *Board) Read32(address uint32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.regs[address]
	if !ok {
		panic(fmt.Sprintf("hw.Board: invalid register read 0x%08X", address))
	}
	return v
}

func (b *Board) Write32(address uint32, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.regs[address]; !ok {
		panic(fmt.Sprintf("hw.Board: invalid register write 0x%08X", address))
	}
	b.regs[address] = value
}

func (b *Board) Slice(address uint32, length int) []byte {
	if b.regionOf(address, length) != regionRAM {
		panic(fmt.Sprintf("hw.Board: slice outside RAM 0x%08X+%#x", address, length))
	}
	off := address - b.ramBase
	return b.cpu[off : off+uint32(length) : off+uint32(length)]
}

func (b *Board) Flush(address uint32, length int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.regionOf(address, length) {
	case regionRAM:
		off := address - b.ramBase
		copy(b.dma[off:off+uint32(length)], b.cpu[off:])
		b.flushes++
	case regionRegisters:
		// register window is uncached
	default:
		slog.Warn("Flush outside mapped memory", "addr", fmt.Sprintf("0x%08X", address), "len", length)
	}
}

func (b *Board) Invalidate(address uint32, length int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.regionOf(address, length) {
	case regionRAM:
		off := address - b.ramBase
		copy(b.cpu[off:off+uint32(length)], b.dma[off:])
	case regionRegisters:
	default:
		slog.Warn("Invalidate outside mapped memory", "addr", fmt.Sprintf("0x%08X", address), "len", length)
	}
}

// DMABytes returns a copy of length bytes of memory as DMA currently sees it.
func (b *Board) DMABytes(address uint32, length int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.regionOf(address, length) != regionRAM {
		panic(fmt.Sprintf("hw.Board: DMA read outside RAM 0x%08X+%#x", address, length))
	}
	off := address - b.ramBase
	out := make([]byte, length)
	copy(out, b.dma[off:])
	return out
}

// Flushes returns how many RAM write-backs have been performed.
func (b *Board) Flushes() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushes
}

// SetOutputRate selects the DMA output clock in the AI control register.
func (b *Board) SetOutputRate(hz int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[addr.AICR] = bit.Assign(addr.AICR32K, b.regs[addr.AICR], hz == Rate32K)
}

// OutputRate returns the DMA output clock selected in the AI control register.
func (b *Board) OutputRate() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return outputRate(b.regs[addr.AICR])
}

func outputRate(aicr uint32) int {
	if bit.IsSet(addr.AICR32K, aicr) {
		return Rate32K
	}
	return Rate48K
}
