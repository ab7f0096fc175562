package decoder

import "errors"

var (
	// ErrMalformedInput is returned when a packetized unit's length
	// fields run past the end of the buffer.
	ErrMalformedInput = errors.New("decoder: malformed packetized input, check data mode")

	// ErrEngineInit is returned when the engine handle cannot be created
	// on start.
	ErrEngineInit = errors.New("decoder: engine initialization failed")

	// ErrEngineDecode is returned when the engine reports a fatal decode
	// error. The wrapped message carries the engine's description.
	ErrEngineDecode = errors.New("decoder: engine decode error")

	// ErrNegotiation is returned when downstream rejects a new output
	// format.
	ErrNegotiation = errors.New("decoder: output format rejected downstream")

	// ErrOutputAllocation is returned when downstream cannot provide an
	// output buffer for a decoded picture.
	ErrOutputAllocation = errors.New("decoder: output frame allocation failed")

	// ErrNotStarted is returned when data is handled before Start or
	// after Stop.
	ErrNotStarted = errors.New("decoder: session not started")
)
