package ports

// Status is the result of an engine push or decode call.
//
// Zero is success. StatusBufferFull and StatusNeedMoreInput are flow-control
// signals, not errors. Every other value is an engine-defined fatal error
// code; DecodeEngine.ErrorText resolves it to a human-readable description.
type Status int

const (
	// StatusOK indicates the call succeeded.
	StatusOK Status = 0
	// StatusBufferFull indicates the engine's internal picture queue is
	// saturated and no further input should be pushed until it drains.
	StatusBufferFull Status = 1
	// StatusNeedMoreInput indicates the engine cannot progress without
	// more compressed data.
	StatusNeedMoreInput Status = 2
)

// Fatal reports whether the status is a terminal decode error rather than
// success or a flow-control signal.
func (s Status) Fatal() bool {
	switch s {
	case StatusOK, StatusBufferFull, StatusNeedMoreInput:
		return false
	}
	return true
}

// PlaneCount is the number of color planes in a decoded picture.
// The output layout is fixed 4:2:0 planar: full-resolution luma followed
// by two half-width, half-height chroma planes.
const PlaneCount = 3

// Picture is one decoded frame held by the engine pending retrieval.
//
// Plane memory stays owned by the engine. Callers copy what they need and
// call Release exactly once, including on failure paths, so the engine can
// reuse the picture slot.
type Picture interface {
	// Width returns the sample width of the given plane.
	Width(plane int) int

	// Height returns the sample height of the given plane.
	Height(plane int) int

	// Plane returns the plane's sample data and its stride in bytes.
	// The stride may exceed the plane width due to row padding.
	Plane(plane int) (data []byte, stride int)

	// PTS returns the presentation timestamp pushed with the data this
	// picture was decoded from, in milliseconds.
	PTS() int64

	// Release returns the picture's memory to the engine.
	Release()
}

// DecodeEngine abstracts the external decoding engine behind a fixed
// operation set, so the decoder core can run against a real binding or a
// test fake. Implementations are not safe for concurrent use; the decoder
// core calls the engine from one logical sequence at a time.
type DecodeEngine interface {
	// PushData hands start-code-delimited bitstream bytes to the engine.
	PushData(data []byte, pts int64) Status

	// Decode advances the engine's internal decoding.
	Decode() Status

	// PushEndOfStream tells the engine no further data will arrive, so
	// pictures held back for reordering can be decoded out.
	PushEndOfStream() Status

	// PeekNextPicture returns the head of the pending-picture queue
	// without removing it, or nil if the queue is empty.
	PeekNextPicture() Picture

	// GetNextPicture removes and returns the head of the pending-picture
	// queue, or nil if the queue is empty.
	GetNextPicture() Picture

	// NextWarning returns the next queued non-fatal warning code.
	// The second return is false once the warning queue is empty.
	NextWarning() (Status, bool)

	// ErrorText returns the engine's description for a status code.
	ErrorText(code Status) string

	// StartWorkerThreads starts n internal decoder worker threads.
	StartWorkerThreads(n int) error

	// Free releases the engine handle. No other method may be called
	// afterwards.
	Free()
}

// InputMode selects the bitstream framing of the compressed input.
// It is fixed for the lifetime of a decode session.
type InputMode int

const (
	// ModePacketized means each NAL unit is prefixed with a 4-byte
	// big-endian length field (MP4-style samples).
	ModePacketized InputMode = iota
	// ModeRaw means the bitstream already contains annex-B start codes.
	ModeRaw
)

// String returns the string representation of the input mode.
func (m InputMode) String() string {
	switch m {
	case ModePacketized:
		return "packetized"
	case ModeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseInputMode parses a string into an InputMode.
// Unknown strings fall back to ModePacketized.
func ParseInputMode(s string) InputMode {
	if s == "raw" {
		return ModeRaw
	}
	return ModePacketized
}

// CompressedUnit is one delivery chunk of compressed bitstream from
// upstream. The decoder core owns the buffer during framing and may rewrite
// it in place, so the slice must be writable.
type CompressedUnit struct {
	Data []byte
	PTS  int64 // presentation timestamp in milliseconds
}

// FrameFormat describes the negotiated output format. All frames emitted
// between two negotiations match it exactly.
type FrameFormat struct {
	Width  int
	Height int
	FPSNum int
	FPSDen int
}

// FrameSize returns the byte size of one tightly packed 4:2:0 frame.
func (f FrameFormat) FrameSize() int {
	luma := f.Width * f.Height
	chroma := ((f.Width + 1) / 2) * ((f.Height + 1) / 2)
	return luma + 2*chroma
}

// Frame is one assembled output frame: tightly packed planar 4:2:0 with no
// row padding, planes in Y, U, V order.
type Frame struct {
	Data   []byte
	PTS    int64 // presentation timestamp in milliseconds
	Format FrameFormat
}

// InputState carries upstream format metadata, typically out-of-band codec
// parameter sets. Replacing it on the decoder simply drops the previous
// reference.
type InputState struct {
	// Codec is the four-character sample entry or container codec name.
	Codec string

	// ParameterSets holds VPS/SPS/PPS NAL units without framing, in the
	// order they should be pushed before the first sample.
	ParameterSets [][]byte
}
