package ports

// FrameSink abstracts the downstream consumer of assembled frames.
//
// The decoder negotiates an output format before delivering any frame in
// that format, and renegotiates whenever decoded picture dimensions change.
type FrameSink interface {
	// Negotiate proposes a new output format. An error is fatal: the
	// decoder must not deliver frames in a rejected format.
	Negotiate(format FrameFormat) error

	// AllocateFrame returns a writable buffer of the given size for the
	// next output frame. An error means downstream cannot provide a
	// buffer for this frame.
	AllocateFrame(size int) ([]byte, error)

	// Deliver hands a completed frame downstream. The sink takes
	// ownership of the frame's buffer.
	Deliver(frame *Frame) error

	// Close finalizes the sink's output.
	Close() error
}
