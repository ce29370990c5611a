package disc

import "errors"

var (
	ErrShortRead     = errors.New("short read from disc image")
	ErrOutOfBounds   = errors.New("read outside disc image")
	ErrNegativeRange = errors.New("negative offset")
)
