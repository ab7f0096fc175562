package decoder

import (
	"encoding/binary"

	"github.com/user/streamdec/pkg/ports"
)

// naluStartCode is the 4-byte annex-B start code written over each length
// prefix when reframing packetized input.
const naluStartCode = 0x00000001

// lengthFieldSize is the size of the big-endian NAL length prefix in
// packetized units.
const lengthFieldSize = 4

// Reframe normalizes one compressed unit into the start-code form the
// decoding engine requires.
//
// Raw units pass through untouched. Packetized units are scanned as a
// sequence of (4-byte big-endian length, payload) records and every length
// field is overwritten in place with the start code, so the buffer must be
// writable and is consumed by this call. No reallocation ever happens.
//
// A cursor landing exactly on the end of the buffer is a complete unit;
// anything past it means a truncated or corrupt length field and returns
// ErrMalformedInput. Callers must treat that as a fatal stream error and
// push nothing to the engine.
func Reframe(data []byte, mode ports.InputMode) error {
	if mode == ports.ModeRaw {
		return nil
	}

	cursor := 0
	for cursor+lengthFieldSize <= len(data) {
		naluLen := int(binary.BigEndian.Uint32(data[cursor:]))
		binary.BigEndian.PutUint32(data[cursor:], naluStartCode)
		cursor += lengthFieldSize + naluLen
	}
	if cursor != len(data) {
		return ErrMalformedInput
	}
	return nil
}
