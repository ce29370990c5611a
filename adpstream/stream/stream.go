package stream

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/valerio/go-adpstream/adpstream/addr"
	"github.com/valerio/go-adpstream/adpstream/adp"
	"github.com/valerio/go-adpstream/adpstream/hw"
)

// BlockReader is the blocking disc read primitive. A read that does not fill p
// must return an error.
type BlockReader interface {
	io.ReaderAt
}

// Stream is the streaming controller. It is not safe for concurrent use.
type Stream struct {
	bus    hw.Bus
	disc   BlockReader
	cfg    Config
	logger *slog.Logger

	state     State
	phase     Phase
	chunk     ChunkConfig
	writer    SampleWriter
	decoder   chunkDecoder
	buffers   *DoubleBuffer
	staging   []byte
	published uint64
	loops     uint64
}

// Option configures a Stream.
type Option func(*Stream)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option { return func(s *Stream) { s.cfg = cfg } }

// WithLogger sets the logger, slog.Default by default.
func WithLogger(l *slog.Logger) Option { return func(s *Stream) { s.logger = l } }

// WithDecoder replaces the ADP block decoder.
func WithDecoder(d BlockDecoder) Option { return func(s *Stream) { s.decoder.dec = d } }

// New creates an idle stream over bus reading compressed audio from disc.
func New(bus hw.Bus, disc BlockReader, opts ...Option) (*Stream, error) {
	s := &Stream{
		bus:     bus,
		disc:    disc,
		cfg:     DefaultConfig(),
		logger:  slog.Default(),
		decoder: chunkDecoder{dec: adp.Decoder{}},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	s.buffers = NewDoubleBuffer(bus, s.cfg.Regions, s.cfg.BufferSize)
	s.staging = make([]byte, s.cfg.maxChunk())
	s.chunk = s.cfg.chunkFor(0)
	s.writer = newWriter(s.chunk.Mode)

	return s, nil
}

// Init zeroes both output regions so the hardware never drains stale memory.
func (s *Stream) Init() {
	s.buffers.Clear()
}

// Start begins streaming the track of size bytes at start on disc, looping by
// default. Both regions are filled before the DMA engine is enabled.
//
// A zero start or size does not touch the current track and only turns
// looping off, so the track ends after its last chunk.
func (s *Stream) Start(start, size uint32) error {
	if start == 0 || size == 0 {
		s.state.Loop = false
		s.logger.Debug("Stream loop disabled", "current", hex(s.state.Current))
		return nil
	}

	end := start + size
	if end < start {
		return fmt.Errorf("%w: start %#x size %#x", ErrTrackRange, start, size)
	}

	s.state = State{
		Start:     start,
		Size:      size,
		Current:   start,
		EndOffset: end,
		Loop:      true,
	}
	s.phase = Priming
	s.loops = 0
	s.prepare()
	s.buffers.Reset()

	for range 2 {
		if err := s.cycle(); err != nil {
			s.state.Current = 0
			s.disable()
			s.phase = Idle
			return err
		}
	}

	s.bus.Write32(addr.AIADPLoc, 0)
	s.bus.Write32(addr.UpdateStream, 0)
	s.bus.Write32(addr.Streaming, 1)
	s.bus.Flush(addr.MailboxStart, int(addr.MailboxEnd-addr.MailboxStart))

	s.state.Loop = true
	s.state.Ended = false
	s.phase = Playing

	s.logger.Info("Streaming", "start", hex(start), "size", hex(size), "mode", s.chunk.Mode)
	return nil
}

// End stops playback immediately.
func (s *Stream) End() {
	s.state.Current = 0
	s.disable()
	s.phase = Idle
	s.logger.Info("Stream stopped")
}

// ChunkSize returns the chunk size selected for the current track.
func (s *Stream) ChunkSize() int {
	return s.chunk.Size
}

// Writer returns the sample writer selected for the current track.
func (s *Stream) Writer() SampleWriter {
	return s.writer
}

// History returns the decoder history carried into the next chunk.
func (s *Stream) History() adp.History {
	return s.decoder.hist
}

// Snapshot returns a copy of the controller state.
func (s *Stream) Snapshot() Snapshot {
	return Snapshot{
		State:        s.state,
		Phase:        s.phase,
		Chunk:        s.chunk,
		ActiveRegion: s.buffers.ActiveIndex(),
		Published:    s.published,
		Loops:        s.loops,
	}
}

// prepare resets per-track decode state and picks the chunk configuration
// from the current output rate.
func (s *Stream) prepare() {
	s.resetDecode()
	s.selectChunk()
}

// resetDecode zeroes the decoder history and the writer's carry.
func (s *Stream) resetDecode() {
	s.decoder.reset()
	s.writer.Reset()
}

// selectChunk re-reads the output rate, swapping the writer when the mode
// changes.
func (s *Stream) selectChunk() {
	chunk := s.cfg.chunkFor(s.bus.Read32(addr.AICR))
	if chunk.Mode != s.writer.Mode() {
		s.writer = newWriter(chunk.Mode)
	}
	s.chunk = chunk
}

// cycle reads the chunk at Current, handles the track boundary, decodes into
// the active region and publishes it.
func (s *Stream) cycle() error {
	n := s.chunk.Size
	staging := s.staging[:n]
	offset := s.state.Current

	if _, err := s.disc.ReadAt(staging, int64(offset)); err != nil {
		return fmt.Errorf("%w: chunk at %#x: %w", ErrDiscRead, offset, err)
	}
	s.state.Current += uint32(n)

	restart := false
	if s.state.Current >= s.state.EndOffset {
		diff := int(min(s.state.Current-s.state.EndOffset, uint32(n)))
		clear(staging[n-diff:])

		if s.state.Loop {
			s.state.Current = s.state.Start
			s.resetDecode()
			restart = true
		} else {
			s.state.Ended = true
			s.phase = Draining
		}
		s.logger.Debug("Track end crossed", "offset", hex(offset), "padding", diff, "loop", s.state.Loop)
	}

	written := s.decoder.decode(staging, s.writer, s.buffers.Active())
	region := s.buffers.ActiveIndex()
	s.buffers.Publish()
	s.published++

	s.logger.Debug("Chunk published", "offset", hex(offset), "region", region, "bytes", written)

	if restart {
		// the tail was read at the old chunk size, so a rate change only
		// applies from the first chunk of the next pass
		s.selectChunk()
		s.loops++
	}
	return nil
}

func (s *Stream) disable() {
	s.bus.Write32(addr.Streaming, 0)
	s.bus.Flush(addr.Streaming, int(addr.CacheLine))
}

func hex(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}
