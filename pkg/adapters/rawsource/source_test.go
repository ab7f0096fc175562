package rawsource

import (
	"bytes"
	"io"
	"testing"

	"github.com/user/streamdec/pkg/ports"
)

func TestNextUnit_ChunksStream(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 10)
	s := NewFromReader(bytes.NewReader(data), 4)

	var sizes []int
	var got []byte
	for {
		unit, err := s.NextUnit()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sizes = append(sizes, len(unit.Data))
		got = append(got, unit.Data...)
	}

	wantSizes := []int{4, 4, 2}
	if len(sizes) != len(wantSizes) {
		t.Fatalf("expected %d chunks, got %v", len(wantSizes), sizes)
	}
	for i, want := range wantSizes {
		if sizes[i] != want {
			t.Errorf("chunk %d: expected size %d, got %d", i, want, sizes[i])
		}
	}
	if !bytes.Equal(got, data) {
		t.Errorf("reassembled stream mismatch: %v", got)
	}
}

func TestNextUnit_EmptyStream(t *testing.T) {
	s := NewFromReader(bytes.NewReader(nil), 4)

	if _, err := s.NextUnit(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	s := NewFromReader(bytes.NewReader(nil), 0)
	if s.chunkSize != DefaultChunkSize {
		t.Errorf("expected default chunk size %d, got %d", DefaultChunkSize, s.chunkSize)
	}
	if s.Mode() != ports.ModeRaw {
		t.Errorf("expected raw mode, got %v", s.Mode())
	}
	if s.InputState() != nil {
		t.Error("expected nil input state for raw streams")
	}
}
