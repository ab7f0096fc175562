package mocks

import (
	"fmt"

	"github.com/user/streamdec/pkg/ports"
)

// Picture is a fake decoded picture with explicit per-plane bytes and
// strides.
type Picture struct {
	Widths  [ports.PlaneCount]int
	Heights [ports.PlaneCount]int
	Strides [ports.PlaneCount]int
	Planes  [ports.PlaneCount][]byte
	Pts     int64

	Released bool
}

// NewPicture creates a 4:2:0 picture of the given luma dimensions with
// stride equal to width and all plane bytes zeroed.
func NewPicture(width, height int) *Picture {
	p := &Picture{}
	for plane := 0; plane < ports.PlaneCount; plane++ {
		w, h := width, height
		if plane > 0 {
			w, h = (width+1)/2, (height+1)/2
		}
		p.Widths[plane] = w
		p.Heights[plane] = h
		p.Strides[plane] = w
		p.Planes[plane] = make([]byte, w*h)
	}
	return p
}

func (p *Picture) Width(plane int) int  { return p.Widths[plane] }
func (p *Picture) Height(plane int) int { return p.Heights[plane] }

func (p *Picture) Plane(plane int) ([]byte, int) {
	return p.Planes[plane], p.Strides[plane]
}

func (p *Picture) PTS() int64 { return p.Pts }

func (p *Picture) Release() { p.Released = true }

var _ ports.Picture = (*Picture)(nil)

// DecodeEngine is a mock implementation of ports.DecodeEngine. It records
// the order of engine calls for verification and serves pictures from a
// scriptable queue.
type DecodeEngine struct {
	PushFunc        func(data []byte, pts int64) ports.Status
	DecodeFunc      func() ports.Status
	EndOfStreamFunc func() ports.Status

	// Queue holds pending pictures served by peek/get.
	Queue []*Picture

	// Warnings are drained one per NextWarning call.
	Warnings []ports.Status

	// ErrorTexts maps status codes to descriptions.
	ErrorTexts map[ports.Status]string

	// Recorded calls for verification
	Calls      []string
	Pushed     [][]byte
	PushedPTS  []int64
	Threads    int
	ThreadsErr error
	FreeCalled bool
}

func (m *DecodeEngine) PushData(data []byte, pts int64) ports.Status {
	m.Calls = append(m.Calls, "push")
	buf := make([]byte, len(data))
	copy(buf, data)
	m.Pushed = append(m.Pushed, buf)
	m.PushedPTS = append(m.PushedPTS, pts)
	if m.PushFunc != nil {
		return m.PushFunc(data, pts)
	}
	return ports.StatusOK
}

func (m *DecodeEngine) Decode() ports.Status {
	m.Calls = append(m.Calls, "decode")
	if m.DecodeFunc != nil {
		return m.DecodeFunc()
	}
	if len(m.Queue) == 0 {
		return ports.StatusNeedMoreInput
	}
	return ports.StatusOK
}

func (m *DecodeEngine) PushEndOfStream() ports.Status {
	m.Calls = append(m.Calls, "eos")
	if m.EndOfStreamFunc != nil {
		return m.EndOfStreamFunc()
	}
	return ports.StatusOK
}

func (m *DecodeEngine) PeekNextPicture() ports.Picture {
	m.Calls = append(m.Calls, "peek")
	if len(m.Queue) == 0 {
		return nil
	}
	return m.Queue[0]
}

func (m *DecodeEngine) GetNextPicture() ports.Picture {
	m.Calls = append(m.Calls, "get")
	if len(m.Queue) == 0 {
		return nil
	}
	pic := m.Queue[0]
	m.Queue = m.Queue[1:]
	return pic
}

func (m *DecodeEngine) NextWarning() (ports.Status, bool) {
	if len(m.Warnings) == 0 {
		return ports.StatusOK, false
	}
	code := m.Warnings[0]
	m.Warnings = m.Warnings[1:]
	return code, true
}

func (m *DecodeEngine) ErrorText(code ports.Status) string {
	if text, ok := m.ErrorTexts[code]; ok {
		return text
	}
	return fmt.Sprintf("engine error %d", int(code))
}

func (m *DecodeEngine) StartWorkerThreads(n int) error {
	m.Calls = append(m.Calls, "threads")
	m.Threads = n
	return m.ThreadsErr
}

func (m *DecodeEngine) Free() {
	m.Calls = append(m.Calls, "free")
	m.FreeCalled = true
}

var _ ports.DecodeEngine = (*DecodeEngine)(nil)
