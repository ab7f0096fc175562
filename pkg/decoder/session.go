package decoder

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/user/streamdec/pkg/ports"
)

// session owns the engine handle for one started decode session. It wraps
// the raw engine operations with the draining and release discipline the
// adapter relies on.
type session struct {
	engine  ports.DecodeEngine
	logger  ports.Logger
	drained bool
}

// push hands one normalized unit to the engine and, when accepted,
// advances decoding. A push that already reports BufferFull skips the
// decode call; pushing further while saturated is the caller's job to
// avoid. Warnings raised by the engine are drained after every attempt.
func (s *session) push(data []byte, pts int64) ports.Status {
	st := s.engine.PushData(data, pts)
	if st == ports.StatusOK {
		st = s.engine.Decode()
	}
	s.drainWarnings()
	return st
}

// endOfStream marks the input as finished, exactly once per session.
func (s *session) endOfStream() ports.Status {
	if s.drained {
		return ports.StatusOK
	}
	s.drained = true
	return s.engine.PushEndOfStream()
}

// drainWarnings logs queued non-fatal engine warnings until the queue is
// empty. Warnings never halt processing.
func (s *session) drainWarnings() {
	for {
		code, ok := s.engine.NextWarning()
		if !ok {
			return
		}
		s.logger.Warn(l10n.F("Engine warning: %s (code=%d)", s.engine.ErrorText(code), int(code)))
	}
}

// decodeError wraps a fatal engine status with its textual description.
func (s *session) decodeError(code ports.Status) error {
	return fmt.Errorf("%w: %s (code=%d)", ErrEngineDecode, s.engine.ErrorText(code), int(code))
}

// peekPicture returns the head of the pending-picture queue without
// removing it, or nil.
func (s *session) peekPicture() ports.Picture {
	return s.engine.PeekNextPicture()
}

// takePicture removes and returns the head picture, or nil. Ownership of
// the picture transfers to the caller, which must Release it.
func (s *session) takePicture() ports.Picture {
	return s.engine.GetNextPicture()
}

// flushPictures takes and discards pictures until the queue is empty.
func (s *session) flushPictures() {
	for {
		pic := s.engine.GetNextPicture()
		if pic == nil {
			return
		}
		pic.Release()
	}
}

// close flushes pending pictures and releases the engine handle.
func (s *session) close() {
	s.flushPictures()
	s.engine.Free()
	s.engine = nil
}
