package decoder

// pressureState tracks whether the engine's internal picture queue is
// saturated. It is explicit per-session state rather than an ambient flag,
// so parallel sessions and repeated test runs stay isolated.
type pressureState int

const (
	// pressureAccepting means new input may be pushed to the engine.
	pressureAccepting pressureState = iota
	// pressureSaturated means the engine reported a full picture buffer;
	// pending pictures must drain before any further push.
	pressureSaturated
)

// pressure is the backpressure controller: a two-state machine deciding
// whether a new compressed unit may be pushed.
type pressure struct {
	state pressureState
}

// saturated reports whether pushes are currently blocked.
func (p *pressure) saturated() bool {
	return p.state == pressureSaturated
}

// saturate records a BufferFull status from push or decode.
func (p *pressure) saturate() {
	p.state = pressureSaturated
}

// reset returns the controller to the accepting state. Called when the
// pending-picture queue has drained, on flush, and on stop.
func (p *pressure) reset() {
	p.state = pressureAccepting
}
