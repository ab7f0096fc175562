package mocks

import "github.com/user/streamdec/pkg/ports"

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	NegotiateFunc func(format ports.FrameFormat) error
	AllocateFunc  func(size int) ([]byte, error)
	DeliverFunc   func(frame *ports.Frame) error

	// Recorded calls for verification
	Negotiations []ports.FrameFormat
	Allocations  []int
	Delivered    []*ports.Frame
	Closed       bool
}

func (m *FrameSink) Negotiate(format ports.FrameFormat) error {
	m.Negotiations = append(m.Negotiations, format)
	if m.NegotiateFunc != nil {
		return m.NegotiateFunc(format)
	}
	return nil
}

func (m *FrameSink) AllocateFrame(size int) ([]byte, error) {
	m.Allocations = append(m.Allocations, size)
	if m.AllocateFunc != nil {
		return m.AllocateFunc(size)
	}
	return make([]byte, size), nil
}

func (m *FrameSink) Deliver(frame *ports.Frame) error {
	m.Delivered = append(m.Delivered, frame)
	if m.DeliverFunc != nil {
		return m.DeliverFunc(frame)
	}
	return nil
}

func (m *FrameSink) Close() error {
	m.Closed = true
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)
