// Package yuvsink provides frame sinks writing decoded I420 frames either
// as a bare concatenation of planes or as a YUV4MPEG2 (Y4M) stream.
package yuvsink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/user/streamdec/pkg/ports"
)

// Format selects the output container.
type Format int

const (
	// FormatRaw writes frames back to back with no framing.
	FormatRaw Format = iota
	// FormatY4M writes a YUV4MPEG2 stream header and per-frame markers.
	FormatY4M
)

// FormatForPath picks Y4M for .y4m files and raw otherwise.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".y4m") {
		return FormatY4M
	}
	return FormatRaw
}

// Sink implements ports.FrameSink over a writer.
type Sink struct {
	writer io.Writer
	closer io.Closer
	format Format

	headerWritten bool
	streamFormat  ports.FrameFormat
}

// New creates a sink writing to the given file path.
func New(path string, format Format) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	s := NewFromWriter(f, format)
	s.closer = f
	return s, nil
}

// NewFromWriter creates a sink writing to an arbitrary writer.
func NewFromWriter(writer io.Writer, format Format) *Sink {
	return &Sink{writer: writer, format: format}
}

// Negotiate fixes the output frame format. The Y4M stream header encodes
// the dimensions once, so a Y4M sink rejects any later format change; the
// raw sink accepts new dimensions and keeps writing.
func (s *Sink) Negotiate(format ports.FrameFormat) error {
	if s.format == FormatY4M && s.headerWritten {
		if format != s.streamFormat {
			return fmt.Errorf("y4m stream is fixed to %dx%d, cannot switch to %dx%d",
				s.streamFormat.Width, s.streamFormat.Height, format.Width, format.Height)
		}
		return nil
	}

	if s.format == FormatY4M {
		fpsNum, fpsDen := format.FPSNum, format.FPSDen
		if fpsNum <= 0 {
			// Y4M requires a frame rate; fall back to the common default.
			fpsNum, fpsDen = 25, 1
		}
		header := fmt.Sprintf("YUV4MPEG2 W%d H%d F%d:%d Ip A0:0 C420jpeg\n",
			format.Width, format.Height, fpsNum, fpsDen)
		if _, err := io.WriteString(s.writer, header); err != nil {
			return fmt.Errorf("write stream header: %w", err)
		}
		s.headerWritten = true
	}
	s.streamFormat = format
	return nil
}

// AllocateFrame returns a buffer for one tightly packed I420 frame.
func (s *Sink) AllocateFrame(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Deliver writes one frame to the output.
func (s *Sink) Deliver(frame *ports.Frame) error {
	if s.format == FormatY4M {
		if _, err := io.WriteString(s.writer, "FRAME\n"); err != nil {
			return fmt.Errorf("write frame marker: %w", err)
		}
	}
	if _, err := s.writer.Write(frame.Data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close closes the underlying file if the sink owns one.
func (s *Sink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

var _ ports.FrameSink = (*Sink)(nil)
