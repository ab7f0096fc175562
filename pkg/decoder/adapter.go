// Package decoder adapts a chunked compressed bitstream onto an external
// decoding engine and emits tightly packed planar 4:2:0 frames downstream.
//
// The adapter is single-threaded and synchronous: each compressed unit is
// framed, pushed, decoded and drained before the next is accepted. The
// engine may run its own worker threads internally; the adapter only ever
// calls it from one logical sequence.
package decoder

import (
	"fmt"
	"runtime"

	"github.com/ideamans/go-l10n"
	"github.com/user/streamdec/pkg/ports"
)

// defaultWorkerThreads is used when the platform cannot report a core
// count.
const defaultWorkerThreads = 2

// Signal tells the caller what the decoder needs next.
type Signal int

const (
	// SignalNeedData means the decoder wants the next compressed unit.
	SignalNeedData Signal = iota
	// SignalFrameReady means a decoded frame is pending; the caller
	// should invoke PullFrame before offering more input.
	SignalFrameReady
)

// Options configures an Adapter.
type Options struct {
	// NewEngine creates the engine handle on Start. Required.
	NewEngine func() (ports.DecodeEngine, error)

	// Sink receives negotiations and assembled frames. Required.
	Sink ports.FrameSink

	// Logger receives engine warnings and lifecycle messages.
	Logger ports.Logger

	// Mode is the bitstream framing of incoming units, fixed for the
	// session.
	Mode ports.InputMode

	// FPSNum/FPSDen override the stream-implied framerate when FPSNum is
	// nonzero. Default 0/1 derives the rate from the stream.
	FPSNum int
	FPSDen int

	// WorkerThreads sets the engine's internal thread count. Zero picks
	// the core count.
	WorkerThreads int
}

// Adapter is the decode session lifecycle controller. It owns the engine
// handle between Start and Stop and ties together framing, backpressure,
// output negotiation and frame assembly per unit of work.
//
// Adapter is not safe for concurrent use.
type Adapter struct {
	newEngine func() (ports.DecodeEngine, error)
	sink      ports.FrameSink
	logger    ports.Logger
	mode      ports.InputMode
	threads   int

	session    *session
	pressure   pressure
	negotiator negotiator
	inputState *ports.InputState
}

// New creates an Adapter in the stopped state.
func New(opts Options) *Adapter {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	fpsDen := opts.FPSDen
	if fpsDen <= 0 {
		fpsDen = 1
	}
	return &Adapter{
		newEngine: opts.NewEngine,
		sink:      opts.Sink,
		logger:    logger,
		mode:      opts.Mode,
		threads:   opts.WorkerThreads,
		negotiator: negotiator{
			sink:   opts.Sink,
			fpsNum: opts.FPSNum,
			fpsDen: fpsDen,
		},
	}
}

// Start creates the engine handle and starts its worker threads. On engine
// creation failure the adapter remains stopped. Starting an already started
// adapter tears down the previous session first.
func (a *Adapter) Start() error {
	a.Stop()

	engine, err := a.newEngine()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineInit, err)
	}
	if engine == nil {
		return ErrEngineInit
	}

	threads := a.threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads <= 0 {
		threads = defaultWorkerThreads
	}
	if err := engine.StartWorkerThreads(threads); err != nil {
		a.logger.Warn(l10n.F("Failed to start engine worker threads: %s", err))
	} else {
		a.logger.Debug(l10n.F("Started %d engine worker threads", threads))
	}

	a.session = &session{engine: engine, logger: a.logger}
	return nil
}

// Stop flushes pending pictures, releases the input state and the engine
// handle, and resets all per-session state. Safe to call repeatedly and
// when never started.
func (a *Adapter) Stop() {
	if a.session != nil {
		a.session.close()
		a.session = nil
	}
	a.inputState = nil
	a.pressure.reset()
	a.negotiator.reset()
}

// Flush drains all pending pictures and resets backpressure to accepting
// without destroying the engine handle. Used for seeks and stream
// discontinuities.
func (a *Adapter) Flush() {
	if a.session != nil {
		a.session.flushPictures()
		a.session.drained = false
	}
	a.pressure.reset()
}

// SetInputState replaces the upstream format metadata. The previous
// reference is dropped. Decode state is not reset.
func (a *Adapter) SetInputState(state *ports.InputState) {
	a.inputState = state
}

// InputState returns the current upstream format metadata, or nil.
func (a *Adapter) InputState() *ports.InputState {
	return a.inputState
}

// Format returns the currently negotiated output format, if any.
func (a *Adapter) Format() (ports.FrameFormat, bool) {
	return a.negotiator.format, a.negotiator.negotiated
}

// HandleUnit offers one compressed unit to the decode session and reports
// the resulting signal and whether the unit was consumed.
//
// While the engine's picture queue is saturated the unit is left
// unconsumed: the caller must pull the pending frame and offer the same
// unit again. A consumed unit's buffer belongs to the adapter afterwards
// (packetized units are rewritten in place during framing).
func (a *Adapter) HandleUnit(unit ports.CompressedUnit) (Signal, bool, error) {
	if a.session == nil {
		return SignalNeedData, false, ErrNotStarted
	}

	// Deliver pending pictures before pushing more data.
	if a.pressure.saturated() {
		if pic := a.session.peekPicture(); pic != nil {
			if err := a.negotiator.check(pic); err != nil {
				return SignalNeedData, false, err
			}
			return SignalFrameReady, false, nil
		}
		a.pressure.reset()
	}

	if len(unit.Data) == 0 {
		return SignalNeedData, true, nil
	}

	if err := Reframe(unit.Data, a.mode); err != nil {
		return SignalNeedData, true, err
	}

	switch st := a.session.push(unit.Data, unit.PTS); st {
	case ports.StatusOK:
		// fall through to the warning drain and picture check

	case ports.StatusBufferFull:
		a.pressure.saturate()
		if pic := a.session.peekPicture(); pic != nil {
			if err := a.negotiator.check(pic); err != nil {
				return SignalNeedData, true, err
			}
			return SignalFrameReady, true, nil
		}
		return SignalNeedData, true, nil

	case ports.StatusNeedMoreInput:
		return SignalNeedData, true, nil

	default:
		return SignalNeedData, true, a.session.decodeError(st)
	}

	pic := a.session.peekPicture()
	if pic == nil {
		return SignalNeedData, true, nil
	}
	if err := a.negotiator.check(pic); err != nil {
		return SignalNeedData, true, err
	}
	return SignalFrameReady, true, nil
}

// Drain finishes the session's input and surfaces pictures the engine was
// holding back for reordering. The caller loops: on SignalFrameReady it
// pulls the frame and calls Drain again; SignalNeedData with a nil error
// means the engine is exhausted.
func (a *Adapter) Drain() (Signal, error) {
	if a.session == nil {
		return SignalNeedData, ErrNotStarted
	}

	if st := a.session.endOfStream(); st.Fatal() {
		return SignalNeedData, a.session.decodeError(st)
	}

	for {
		if pic := a.session.peekPicture(); pic != nil {
			if err := a.negotiator.check(pic); err != nil {
				return SignalNeedData, err
			}
			return SignalFrameReady, nil
		}

		st := a.session.engine.Decode()
		a.session.drainWarnings()
		switch st {
		case ports.StatusOK, ports.StatusBufferFull:
			// pictures may be pending now, peek again
		case ports.StatusNeedMoreInput:
			return SignalNeedData, nil
		default:
			return SignalNeedData, a.session.decodeError(st)
		}
	}
}

// PullFrame takes the head pending picture, assembles it into an output
// buffer from the sink and delivers it downstream. It returns (nil, nil)
// when no picture is pending. The engine picture is always released, even
// when allocation or delivery fails.
func (a *Adapter) PullFrame() (*ports.Frame, error) {
	if a.session == nil {
		return nil, ErrNotStarted
	}

	pic := a.session.takePicture()
	if pic == nil {
		return nil, nil
	}

	// The EOS drain path can reach pictures that never went through
	// HandleUnit's peek, so re-check the format here; this is a no-op
	// when dimensions are unchanged.
	if err := a.negotiator.check(pic); err != nil {
		pic.Release()
		return nil, err
	}

	frame, err := assembleFrame(a.sink, a.negotiator.format, pic)
	if err != nil {
		return nil, err
	}
	if err := a.sink.Deliver(frame); err != nil {
		return nil, fmt.Errorf("deliver frame: %w", err)
	}
	return frame, nil
}

// noopLogger backs New when no logger is supplied.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...interface{})       {}
func (noopLogger) Info(msg string, args ...interface{})        {}
func (noopLogger) Warn(msg string, args ...interface{})        {}
func (noopLogger) Error(msg string, args ...interface{})       {}
func (noopLogger) WithComponent(component string) ports.Logger { return noopLogger{} }
