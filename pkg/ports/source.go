package ports

// BitstreamSource abstracts the upstream producer of compressed units.
//
// NextUnit returns io.EOF when the stream is exhausted. Returned buffers
// are owned by the caller and may be rewritten in place during framing.
type BitstreamSource interface {
	// Mode returns the framing of the units this source produces.
	Mode() InputMode

	// InputState returns the out-of-band format metadata for the stream,
	// or nil when everything is carried in band.
	InputState() *InputState

	// NextUnit returns the next compressed unit, or io.EOF at the end of
	// the stream.
	NextUnit() (CompressedUnit, error)

	// Close releases the source's resources.
	Close() error
}
