package stream

import (
	"fmt"

	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/adp"
	"github.com/valerio/go-adpstream/adpstream/bit"
)

// Default chunk sizes. Each decodes to exactly one addr.BufferSize region.
const (
	ChunkFullRate   = 0x3800
	ChunkDownsample = 0x5400
)

// Mode selects how decoded pairs are written to the output regions.
type Mode uint8

const (
	// FullRate writes every decoded pair (48 kHz output).
	FullRate Mode = iota
	// Downsample reduces decoded pairs 3:2 (32 kHz output).
	Downsample
)

func (m Mode) String() string {
	switch m {
	case FullRate:
		return "48kHz"
	case Downsample:
		return "48kHz->32kHz"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ChunkConfig is the chunk size and write mode chosen for one track.
type ChunkConfig struct {
	Mode Mode
	Size int
}

// Pairs returns the number of decoded stereo pairs in a chunk.
func (c ChunkConfig) Pairs() int {
	return c.Size / adp.BlockSize * adp.SamplesPerBlock
}

// OutputBytes returns the number of PCM bytes one chunk writes.
func (c ChunkConfig) OutputBytes() int {
	pairs := c.Pairs()
	if c.Mode == Downsample {
		pairs = pairs / 3 * 2
	}
	return pairs * 4
}

// Config describes the output regions and chunk sizes.
type Config struct {
	Regions         [2]uint32
	BufferSize      int
	FullRateChunk   int
	DownsampleChunk int
}

// DefaultConfig returns the standard layout: two 0xC400 byte regions and
// chunks of 0x3800 (48 kHz) or 0x5400 (32 kHz) bytes.
func DefaultConfig() Config {
	return Config{
		Regions:         [2]uint32{addr.Buffer1, addr.Buffer2},
		BufferSize:      addr.BufferSize,
		FullRateChunk:   ChunkFullRate,
		DownsampleChunk: ChunkDownsample,
	}
}

// Validate checks that every chunk is made of whole blocks and fits a region.
func (c Config) Validate() error {
	for _, size := range []int{c.FullRateChunk, c.DownsampleChunk} {
		if size <= 0 || size%adp.BlockSize != 0 {
			return fmt.Errorf("%w: %#x", ErrChunkAlignment, size)
		}
	}

	down := ChunkConfig{Mode: Downsample, Size: c.DownsampleChunk}
	if down.Pairs()%3 != 0 {
		// every chunk must start a fresh 3-pair cycle
		return fmt.Errorf("%w: %#x decodes to %d pairs, not a multiple of 3", ErrChunkAlignment, c.DownsampleChunk, down.Pairs())
	}

	for _, cc := range []ChunkConfig{{Mode: FullRate, Size: c.FullRateChunk}, down} {
		if cc.OutputBytes() > c.BufferSize {
			return fmt.Errorf("%w: %s chunk %#x writes %#x bytes, region is %#x",
				ErrBufferOverflow, cc.Mode, cc.Size, cc.OutputBytes(), c.BufferSize)
		}
	}

	lo, hi := c.Regions[0], c.Regions[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if uint64(lo)+uint64(c.BufferSize) > uint64(hi) {
		return fmt.Errorf("%w: 0x%08X and 0x%08X with size %#x", ErrRegionOverlap, c.Regions[0], c.Regions[1], c.BufferSize)
	}

	return nil
}

// chunkFor selects the chunk configuration from the AI control register.
func (c Config) chunkFor(aicr uint32) ChunkConfig {
	if bit.IsSet(addr.AICR32K, aicr) {
		return ChunkConfig{Mode: Downsample, Size: c.DownsampleChunk}
	}
	return ChunkConfig{Mode: FullRate, Size: c.FullRateChunk}
}

func (c Config) maxChunk() int {
	return max(c.FullRateChunk, c.DownsampleChunk)
}
