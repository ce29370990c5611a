package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAVSink writes interleaved 16-bit stereo frames to a PCM WAV file.
type WAVSink struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	closer io.Closer
	frames int
}

// CreateWAV creates (or truncates) a WAV file at path.
func CreateWAV(path string, rate int) (*WAVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewWAVSink(f, rate)
	s.closer = f
	return s, nil
}

// NewWAVSink writes to w. The header is finalised by Close.
func NewWAVSink(w io.WriteSeeker, rate int) *WAVSink {
	return &WAVSink{
		enc: wav.NewEncoder(w, rate, 16, 2, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
			SourceBitDepth: 16,
		},
	}
}

// Write appends frames.
func (s *WAVSink) Write(frames []int16) error {
	if len(frames)%2 != 0 {
		return ErrOddSamples
	}
	if cap(s.buf.Data) < len(frames) {
		s.buf.Data = make([]int, len(frames))
	}
	s.buf.Data = s.buf.Data[:len(frames)]
	for i, v := range frames {
		s.buf.Data[i] = int(v)
	}

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}
	s.frames += len(frames) / 2
	return nil
}

// Frames returns how many frames have been written.
func (s *WAVSink) Frames() int {
	return s.frames
}

// Close finalises the header and closes the file, if CreateWAV opened it.
func (s *WAVSink) Close() error {
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("finalising wav: %w", err)
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
