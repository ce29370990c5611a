package adp

const (
	// BlockSize is the size in bytes of one compressed block.
	BlockSize = 32
	// HeaderSize is the number of header bytes at the start of a block.
	HeaderSize = 4
	// SamplesPerBlock is the number of stereo sample pairs a block decodes to.
	SamplesPerBlock = BlockSize - HeaderSize
	// SampleRate is the native rate of decoded streams in Hz.
	SampleRate = 48000
)

// predictor coefficients (x/64) for the previous two outputs, indexed by the
// high nibble of the header byte.
var predictors = [4][2]int32{
	{0, 0},
	{0x3C, 0},
	{0x73, -0x34},
	{0x62, -0x37},
}

const (
	histMin = -0x200000
	histMax = 0x1FFFFF
)
