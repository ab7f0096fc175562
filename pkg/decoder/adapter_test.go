package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/user/streamdec/pkg/mocks"
	"github.com/user/streamdec/pkg/ports"
)

func startedAdapter(t *testing.T, engine *mocks.DecodeEngine, sink *mocks.FrameSink, mode ports.InputMode) *Adapter {
	t.Helper()
	a := New(Options{
		NewEngine: func() (ports.DecodeEngine, error) { return engine, nil },
		Sink:      sink,
		Mode:      mode,
	})
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return a
}

func rawUnit(payload ...byte) ports.CompressedUnit {
	data := append([]byte{0, 0, 0, 1}, payload...)
	return ports.CompressedUnit{Data: data}
}

func TestAdapter_StartFailure(t *testing.T) {
	a := New(Options{
		NewEngine: func() (ports.DecodeEngine, error) {
			return nil, fmt.Errorf("no memory")
		},
		Sink: &mocks.FrameSink{},
	})

	err := a.Start()
	if !errors.Is(err, ErrEngineInit) {
		t.Fatalf("expected ErrEngineInit, got %v", err)
	}

	// The adapter stays stopped.
	_, _, err = a.HandleUnit(rawUnit(0x40))
	if !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestAdapter_StartWorkerThreadHint(t *testing.T) {
	engine := &mocks.DecodeEngine{}
	startedAdapter(t, engine, &mocks.FrameSink{}, ports.ModeRaw)

	if engine.Threads <= 0 {
		t.Errorf("expected a positive worker-thread hint, got %d", engine.Threads)
	}
}

func TestAdapter_BackpressureOrdering(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Queue: []*mocks.Picture{mocks.NewPicture(64, 64), mocks.NewPicture(64, 64)},
	}
	decodes := 0
	engine.DecodeFunc = func() ports.Status {
		decodes++
		if decodes == 1 {
			return ports.StatusBufferFull
		}
		return ports.StatusOK
	}
	sink := &mocks.FrameSink{}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	// First unit saturates the engine; a picture is already pending.
	sig, consumed, err := a.HandleUnit(rawUnit(0x01))
	if err != nil {
		t.Fatalf("unit 1: %v", err)
	}
	if sig != SignalFrameReady || !consumed {
		t.Fatalf("unit 1: expected consumed FrameReady, got sig=%v consumed=%v", sig, consumed)
	}
	if _, err := a.PullFrame(); err != nil {
		t.Fatalf("pull 1: %v", err)
	}

	// While saturated the next unit must not be pushed.
	u2 := rawUnit(0x02)
	sig, consumed, err = a.HandleUnit(u2)
	if err != nil {
		t.Fatalf("unit 2 offer 1: %v", err)
	}
	if sig != SignalFrameReady || consumed {
		t.Fatalf("unit 2 offer 1: expected unconsumed FrameReady, got sig=%v consumed=%v", sig, consumed)
	}
	if _, err := a.PullFrame(); err != nil {
		t.Fatalf("pull 2: %v", err)
	}

	// Queue drained: the re-offered unit is pushed again.
	sig, consumed, err = a.HandleUnit(u2)
	if err != nil {
		t.Fatalf("unit 2 offer 2: %v", err)
	}
	if sig != SignalNeedData || !consumed {
		t.Fatalf("unit 2 offer 2: expected consumed NeedData, got sig=%v consumed=%v", sig, consumed)
	}

	wantCalls := []string{
		"push", "decode", "peek", // unit 1: saturates, picture pending
		"get",                    // pull 1
		"peek",                   // unit 2 offer 1: still saturated
		"get",                    // pull 2
		"peek",                   // unit 2 offer 2: queue empty, back to accepting
		"push", "decode", "peek", // unit 2 pushed at last
	}
	gotCalls := engine.Calls[1:] // skip the Start worker-thread call
	if !reflect.DeepEqual(gotCalls, wantCalls) {
		t.Errorf("call order mismatch:\n got %v\nwant %v", gotCalls, wantCalls)
	}
}

func TestAdapter_NegotiatesOncePerDimensionChange(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Queue: []*mocks.Picture{
			mocks.NewPicture(64, 64),
			mocks.NewPicture(64, 64),
			mocks.NewPicture(128, 96),
		},
	}
	sink := &mocks.FrameSink{}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	for i := 0; i < 3; i++ {
		sig, _, err := a.HandleUnit(rawUnit(byte(i)))
		if err != nil {
			t.Fatalf("unit %d: %v", i, err)
		}
		if sig != SignalFrameReady {
			t.Fatalf("unit %d: expected FrameReady, got %v", i, sig)
		}
		if _, err := a.PullFrame(); err != nil {
			t.Fatalf("pull %d: %v", i, err)
		}
	}

	want := []ports.FrameFormat{
		{Width: 64, Height: 64, FPSDen: 1},
		{Width: 128, Height: 96, FPSDen: 1},
	}
	if !reflect.DeepEqual(sink.Negotiations, want) {
		t.Errorf("negotiations mismatch:\n got %v\nwant %v", sink.Negotiations, want)
	}
}

func TestAdapter_FramerateOverride(t *testing.T) {
	engine := &mocks.DecodeEngine{Queue: []*mocks.Picture{mocks.NewPicture(64, 64)}}
	sink := &mocks.FrameSink{}
	a := New(Options{
		NewEngine: func() (ports.DecodeEngine, error) { return engine, nil },
		Sink:      sink,
		Mode:      ports.ModeRaw,
		FPSNum:    30,
		FPSDen:    1,
	})
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, _, err := a.HandleUnit(rawUnit(0x01)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sink.Negotiations) != 1 {
		t.Fatalf("expected 1 negotiation, got %d", len(sink.Negotiations))
	}
	got := sink.Negotiations[0]
	if got.FPSNum != 30 || got.FPSDen != 1 {
		t.Errorf("expected 30/1 framerate, got %d/%d", got.FPSNum, got.FPSDen)
	}
}

func TestAdapter_NegotiationRejected(t *testing.T) {
	engine := &mocks.DecodeEngine{Queue: []*mocks.Picture{mocks.NewPicture(64, 64)}}
	sink := &mocks.FrameSink{
		NegotiateFunc: func(ports.FrameFormat) error {
			return fmt.Errorf("format not supported")
		},
	}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	_, _, err := a.HandleUnit(rawUnit(0x01))
	if !errors.Is(err, ErrNegotiation) {
		t.Errorf("expected ErrNegotiation, got %v", err)
	}
}

func TestAdapter_EngineDecodeError(t *testing.T) {
	const badStream ports.Status = 17
	engine := &mocks.DecodeEngine{
		DecodeFunc: func() ports.Status { return badStream },
		ErrorTexts: map[ports.Status]string{badStream: "checksum mismatch"},
	}
	a := startedAdapter(t, engine, &mocks.FrameSink{}, ports.ModeRaw)

	_, _, err := a.HandleUnit(rawUnit(0x01))
	if !errors.Is(err, ErrEngineDecode) {
		t.Fatalf("expected ErrEngineDecode, got %v", err)
	}
	if !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("expected engine text in error, got %q", err)
	}
}

func TestAdapter_MalformedPacketizedInput(t *testing.T) {
	engine := &mocks.DecodeEngine{}
	a := startedAdapter(t, engine, &mocks.FrameSink{}, ports.ModePacketized)
	threadCalls := len(engine.Calls)

	// One record declaring 8 payload bytes in a 4-byte buffer.
	_, _, err := a.HandleUnit(ports.CompressedUnit{Data: []byte{0, 0, 0, 8}})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}

	// Nothing was pushed to the engine.
	if len(engine.Calls) != threadCalls {
		t.Errorf("expected zero engine interactions, got %v", engine.Calls[threadCalls:])
	}
}

func TestAdapter_WarningsDrained(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Warnings: []ports.Status{5, 6},
	}
	a := startedAdapter(t, engine, &mocks.FrameSink{}, ports.ModeRaw)

	if _, _, err := a.HandleUnit(rawUnit(0x01)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(engine.Warnings) != 0 {
		t.Errorf("expected warning queue drained, %d left", len(engine.Warnings))
	}
}

func TestAdapter_FlushResetsBackpressure(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Queue:      []*mocks.Picture{mocks.NewPicture(64, 64), mocks.NewPicture(64, 64)},
		DecodeFunc: func() ports.Status { return ports.StatusBufferFull },
	}
	sink := &mocks.FrameSink{}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	if _, _, err := a.HandleUnit(rawUnit(0x01)); err != nil {
		t.Fatalf("saturating unit: %v", err)
	}
	pics := append([]*mocks.Picture(nil), engine.Queue...)

	a.Flush()

	if len(engine.Queue) != 0 {
		t.Errorf("expected picture queue drained, %d left", len(engine.Queue))
	}
	for i, pic := range pics {
		if !pic.Released {
			t.Errorf("picture %d not released on flush", i)
		}
	}

	// A subsequent unit is pushed straight away.
	engine.DecodeFunc = nil
	pushed := len(engine.Pushed)
	_, consumed, err := a.HandleUnit(rawUnit(0x02))
	if err != nil {
		t.Fatalf("post-flush unit: %v", err)
	}
	if !consumed || len(engine.Pushed) != pushed+1 {
		t.Errorf("expected post-flush unit to be pushed, consumed=%v pushes=%d", consumed, len(engine.Pushed)-pushed)
	}
}

func TestAdapter_StopReleasesEverything(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Queue: []*mocks.Picture{mocks.NewPicture(64, 64)},
	}
	a := startedAdapter(t, engine, &mocks.FrameSink{}, ports.ModeRaw)
	a.SetInputState(&ports.InputState{Codec: "hev1"})

	a.Stop()

	if !engine.FreeCalled {
		t.Error("expected engine to be freed")
	}
	if len(engine.Queue) != 0 {
		t.Error("expected pending pictures drained on stop")
	}
	if a.InputState() != nil {
		t.Error("expected input state released on stop")
	}
	if _, ok := a.Format(); ok {
		t.Error("expected negotiated format cleared on stop")
	}

	// Stop is idempotent.
	a.Stop()

	if _, _, err := a.HandleUnit(rawUnit(0x01)); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted after stop, got %v", err)
	}
}

func TestAdapter_SetInputStateReplaces(t *testing.T) {
	a := startedAdapter(t, &mocks.DecodeEngine{}, &mocks.FrameSink{}, ports.ModeRaw)

	first := &ports.InputState{Codec: "hvc1"}
	second := &ports.InputState{Codec: "hev1"}
	a.SetInputState(first)
	a.SetInputState(second)

	if a.InputState() != second {
		t.Errorf("expected latest input state, got %+v", a.InputState())
	}
}

func TestAdapter_EndToEndRawSinglePicture(t *testing.T) {
	pic := mocks.NewPicture(64, 64)
	engine := &mocks.DecodeEngine{Queue: []*mocks.Picture{pic}}
	sink := &mocks.FrameSink{}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	unit := rawUnit(0x40, 0x01, 0xAB)
	want := append([]byte(nil), unit.Data...)

	sig, consumed, err := a.HandleUnit(unit)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sig != SignalFrameReady || !consumed {
		t.Fatalf("expected consumed FrameReady, got sig=%v consumed=%v", sig, consumed)
	}
	// Raw data reaches the engine unchanged.
	if !bytes.Equal(engine.Pushed[0], want) {
		t.Errorf("pushed data modified: %v", engine.Pushed[0])
	}

	frame, err := a.PullFrame()
	if err != nil {
		t.Fatalf("pull: %v", err)
	}

	if len(sink.Negotiations) != 1 {
		t.Fatalf("expected exactly one negotiation, got %d", len(sink.Negotiations))
	}
	if f := sink.Negotiations[0]; f.Width != 64 || f.Height != 64 {
		t.Errorf("expected 64x64 negotiation, got %dx%d", f.Width, f.Height)
	}

	wantSize := 64*64 + 2*(32*32)
	if len(frame.Data) != wantSize {
		t.Errorf("expected frame size %d, got %d", wantSize, len(frame.Data))
	}
	if len(sink.Delivered) != 1 {
		t.Errorf("expected exactly one delivered frame, got %d", len(sink.Delivered))
	}
	if !pic.Released {
		t.Error("expected picture released after assembly")
	}
}

func TestAdapter_DrainDeliversBufferedPictures(t *testing.T) {
	engine := &mocks.DecodeEngine{
		Queue:      []*mocks.Picture{mocks.NewPicture(64, 64), mocks.NewPicture(64, 64)},
		DecodeFunc: func() ports.Status { return ports.StatusNeedMoreInput },
	}
	sink := &mocks.FrameSink{}
	a := startedAdapter(t, engine, sink, ports.ModeRaw)

	frames := 0
	for {
		sig, err := a.Drain()
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if sig != SignalFrameReady {
			break
		}
		if _, err := a.PullFrame(); err != nil {
			t.Fatalf("pull: %v", err)
		}
		frames++
	}

	if frames != 2 {
		t.Errorf("expected 2 drained frames, got %d", frames)
	}
	if len(sink.Delivered) != 2 {
		t.Errorf("expected 2 delivered frames, got %d", len(sink.Delivered))
	}

	// End of stream is signalled to the engine exactly once.
	eos := 0
	for _, call := range engine.Calls {
		if call == "eos" {
			eos++
		}
	}
	if eos != 1 {
		t.Errorf("expected one end-of-stream push, got %d", eos)
	}
}

func TestAdapter_DrainWithoutStart(t *testing.T) {
	a := New(Options{
		NewEngine: func() (ports.DecodeEngine, error) { return &mocks.DecodeEngine{}, nil },
		Sink:      &mocks.FrameSink{},
	})

	if _, err := a.Drain(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestAdapter_WorkerThreadOverride(t *testing.T) {
	engine := &mocks.DecodeEngine{}
	a := New(Options{
		NewEngine:     func() (ports.DecodeEngine, error) { return engine, nil },
		Sink:          &mocks.FrameSink{},
		Mode:          ports.ModeRaw,
		WorkerThreads: 3,
	})
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if engine.Threads != 3 {
		t.Errorf("expected 3 worker threads, got %d", engine.Threads)
	}
}

func TestAdapter_PullFrameWithoutPicture(t *testing.T) {
	a := startedAdapter(t, &mocks.DecodeEngine{}, &mocks.FrameSink{}, ports.ModeRaw)

	frame, err := a.PullFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame != nil {
		t.Errorf("expected no frame, got %+v", frame)
	}
}
