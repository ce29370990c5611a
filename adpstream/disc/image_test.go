package disc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type truncatedReader struct {
	data []byte
}

func (t truncatedReader) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, t.data[off:])
	return n / 2, nil
}

type failingReader struct{}

var errDrive = errors.New("drive error")

func (failingReader) ReadAt(p []byte, off int64) (int, error) {
	return 0, errDrive
}

func TestImage_ReadAt(t *testing.T) {
	data := make([]byte, 0x100)
	for i := range data {
		data[i] = byte(i)
	}
	img := New(bytes.NewReader(data), int64(len(data)))

	buf := make([]byte, 0x10)
	n, err := img.ReadAt(buf, 0x20)
	require.NoError(t, err)
	assert.Equal(t, 0x10, n)
	assert.Equal(t, data[0x20:0x30], buf)
}

func TestImage_Errors(t *testing.T) {
	data := make([]byte, 0x40)

	tests := []struct {
		name string
		img  *Image
		off  int64
		len  int
		want error
	}{
		{"past end", New(bytes.NewReader(data), 0x40), 0x30, 0x20, ErrOutOfBounds},
		{"negative", New(bytes.NewReader(data), 0x40), -1, 0x10, ErrNegativeRange},
		{"short", New(truncatedReader{data}, 0x40), 0, 0x10, ErrShortRead},
		{"device", New(failingReader{}, 0x40), 0, 0x10, errDrive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.img.ReadAt(make([]byte, tt.len), tt.off)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.img")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	img, err := Open(path)
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, int64(10), img.Size())
	buf := make([]byte, 4)
	_, err = img.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, "3456", string(buf))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.img"))
	assert.Error(t, err)
}
