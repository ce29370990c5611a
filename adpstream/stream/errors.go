package stream

import "errors"

var (
	ErrDiscRead       = errors.New("disc read failed")
	ErrTrackRange     = errors.New("track end overflows address space")
	ErrChunkAlignment = errors.New("chunk size must be a non-zero multiple of the ADP block size")
	ErrBufferOverflow = errors.New("decoded chunk does not fit in an output region")
	ErrRegionOverlap  = errors.New("output regions overlap")
)
