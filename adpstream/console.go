// Package adpstream wires the disc, the emulated audio hardware and the
// streaming controller into a single playable unit.
package adpstream

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/disc"
	"github.com/valerio/go-adpstream/adpstream/hw"
	"github.com/valerio/go-adpstream/adpstream/stream"
)

// Console is the root struct: a disc, an audio board with its DMA engine, and
// the stream controller driving them.
//
// Step is meant to be called from a single playback loop; the remaining
// methods may be called from any goroutine.
type Console struct {
	mu sync.Mutex

	closer func() error
	board  *hw.Board
	dma    *hw.AudioDMA
	stream *stream.Stream
	logger *slog.Logger
}

// Option configures a Console.
type Option func(*consoleOptions)

type consoleOptions struct {
	logger *slog.Logger
	rate   int
	stream []stream.Option
}

// WithLogger sets the logger used by the console and its stream.
func WithLogger(l *slog.Logger) Option {
	return func(o *consoleOptions) { o.logger = l }
}

// WithOutputRate selects the initial DMA output clock, hw.Rate48K by default.
func WithOutputRate(hz int) Option {
	return func(o *consoleOptions) { o.rate = hz }
}

// WithStreamOptions passes options through to stream.New.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *consoleOptions) { o.stream = append(o.stream, opts...) }
}

// New creates a console reading tracks from d.
func New(d stream.BlockReader, opts ...Option) (*Console, error) {
	o := consoleOptions{logger: slog.Default(), rate: hw.Rate48K}
	for _, opt := range opts {
		opt(&o)
	}

	board := hw.NewStreamBoard()
	board.SetOutputRate(o.rate)

	sopts := append([]stream.Option{stream.WithLogger(o.logger)}, o.stream...)
	s, err := stream.New(board, d, sopts...)
	if err != nil {
		return nil, fmt.Errorf("creating stream: %w", err)
	}
	s.Init()

	return &Console{
		board:  board,
		dma:    hw.NewAudioDMA(board),
		stream: s,
		logger: o.logger,
	}, nil
}

// NewWithFile opens the disc image at path and creates a console for it.
func NewWithFile(path string, opts ...Option) (*Console, error) {
	img, err := disc.Open(path)
	if err != nil {
		return nil, err
	}

	c, err := New(img, opts...)
	if err != nil {
		img.Close()
		return nil, err
	}
	c.closer = img.Close
	return c, nil
}

// Close releases the disc image opened by NewWithFile.
func (c *Console) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// SetOutputRate changes the DMA output clock. The stream picks it up on the
// next Start or loop restart.
func (c *Console) SetOutputRate(hz int) {
	c.board.SetOutputRate(hz)
}

// OutputRate returns the DMA output clock.
func (c *Console) OutputRate() int {
	return c.dma.SampleRate()
}

// Start begins playback of a looping track, or disables looping when start or
// size is zero.
func (c *Console) Start(start, size uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.Start(start, size)
}

// End stops playback.
func (c *Console) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stream.End()
}

// Step lets the DMA engine produce len(dst)/2 frames into dst, then services
// any refill request it raised. dst must not span more than one region.
func (c *Console) Step(dst []int16) (int, error) {
	n := c.dma.ReadFrames(dst)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.stream.Poll(); err != nil {
		c.logger.Error("Stream refill failed", "error", err)
		c.stream.End()
		return n, err
	}
	return n, nil
}

// Streaming reports whether the DMA engine is draining the stream buffers.
func (c *Console) Streaming() bool {
	return c.board.Read32(addr.Streaming) != 0
}

// Snapshot returns the stream controller state.
func (c *Console) Snapshot() stream.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.Snapshot()
}

// Underruns returns how many refills the DMA engine had to wait for.
func (c *Console) Underruns() uint64 {
	return c.dma.Underruns()
}

// Frames returns how many frames were played while streaming.
func (c *Console) Frames() uint64 {
	return c.dma.Frames()
}
