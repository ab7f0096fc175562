// Package rawsource provides a bitstream source reading start-code
// delimited (Annex B) HEVC streams from a file or reader.
package rawsource

import (
	"fmt"
	"io"
	"os"

	"github.com/user/streamdec/pkg/ports"
)

// DefaultChunkSize is the read granularity. Raw streams carry no unit
// boundaries, so any chunking works; the decoder finds start codes itself.
const DefaultChunkSize = 64 * 1024

// Source implements ports.BitstreamSource over a raw Annex B stream.
type Source struct {
	reader    io.Reader
	closer    io.Closer
	chunkSize int
}

// New opens a raw bitstream file.
func New(path string, chunkSize int) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	s := NewFromReader(f, chunkSize)
	s.closer = f
	return s, nil
}

// NewFromReader wraps an arbitrary reader as a raw bitstream source.
func NewFromReader(reader io.Reader, chunkSize int) *Source {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Source{reader: reader, chunkSize: chunkSize}
}

// Mode returns ModeRaw: units already carry start codes.
func (s *Source) Mode() ports.InputMode {
	return ports.ModeRaw
}

// InputState returns nil; raw streams carry parameter sets in-band.
func (s *Source) InputState() *ports.InputState {
	return nil
}

// NextUnit reads the next chunk of the stream, or io.EOF at the end. Raw
// streams have no per-unit timestamps, so PTS is always zero and the
// decoder assigns presentation order.
func (s *Source) NextUnit() (ports.CompressedUnit, error) {
	buf := make([]byte, s.chunkSize)
	n, err := io.ReadFull(s.reader, buf)
	if n > 0 {
		return ports.CompressedUnit{Data: buf[:n]}, nil
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err != io.EOF {
		err = fmt.Errorf("read chunk: %w", err)
	}
	return ports.CompressedUnit{}, err
}

// Close closes the underlying file if the source owns one.
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

var _ ports.BitstreamSource = (*Source)(nil)
