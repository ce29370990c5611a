package stream

import "github.com/valerio/go-adpstream/adpstream/addr"

// Poll services a pending refill request. It returns immediately when the
// UpdateStream word is clear; otherwise it performs one refill step and clears
// the word, even if the step failed.
//
// A returned error wraps ErrDiscRead and is not recoverable by the stream.
func (s *Stream) Poll() error {
	s.bus.Invalidate(addr.UpdateStream, int(addr.CacheLine))
	if s.bus.Read32(addr.UpdateStream) == 0 {
		return nil
	}

	err := s.refill()

	s.bus.Write32(addr.UpdateStream, 0)
	s.bus.Flush(addr.UpdateStream, int(addr.CacheLine))
	return err
}

func (s *Stream) refill() error {
	switch {
	case s.state.Ended:
		s.state.Ended = false
		s.state.Current = 0
		s.disable()
		s.phase = Idle
		s.logger.Info("Stream finished", "start", hex(s.state.Start), "size", hex(s.state.Size))
		return nil
	case s.state.Current > 0:
		return s.cycle()
	default:
		return nil
	}
}
