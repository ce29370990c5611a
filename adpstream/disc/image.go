package disc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Image is a raw disc image addressed by absolute byte offset. Reads block
// until the requested range has been fully transferred.
type Image struct {
	r    io.ReaderAt
	size int64
	c    io.Closer
	name string
}

// Open opens the disc image at path.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	slog.Info("Opened disc image", "path", path, "bytes", info.Size())

	return &Image{r: f, size: info.Size(), c: f, name: path}, nil
}

// New wraps an in-memory or otherwise already opened image of the given size.
func New(r io.ReaderAt, size int64) *Image {
	return &Image{r: r, size: size, name: "memory"}
}

// Size returns the image size in bytes.
func (i *Image) Size() int64 {
	return i.size
}

// ReadAt fills p from offset off. Unlike a plain io.ReaderAt, a read that
// cannot be satisfied in full is always an error.
func (i *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeRange
	}
	if off+int64(len(p)) > i.size {
		return 0, fmt.Errorf("%w: %s [%#x, %#x) size %#x", ErrOutOfBounds, i.name, off, off+int64(len(p)), i.size)
	}

	n, err := i.r.ReadAt(p, off)
	if n < len(p) {
		if err == nil || err == io.EOF {
			err = ErrShortRead
		}
		return n, fmt.Errorf("%s at %#x: %w", i.name, off, err)
	}

	return n, nil
}

// Close releases the underlying file, if any.
func (i *Image) Close() error {
	if i.c == nil {
		return nil
	}
	return i.c.Close()
}
