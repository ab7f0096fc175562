package mocks

import (
	"io"

	"github.com/user/streamdec/pkg/ports"
)

// BitstreamSource is a mock implementation of ports.BitstreamSource that
// serves a fixed list of units.
type BitstreamSource struct {
	InputMode ports.InputMode
	State     *ports.InputState
	Units     []ports.CompressedUnit

	next   int
	Closed bool
}

func (m *BitstreamSource) Mode() ports.InputMode { return m.InputMode }

func (m *BitstreamSource) InputState() *ports.InputState { return m.State }

func (m *BitstreamSource) NextUnit() (ports.CompressedUnit, error) {
	if m.next >= len(m.Units) {
		return ports.CompressedUnit{}, io.EOF
	}
	unit := m.Units[m.next]
	m.next++
	return unit, nil
}

func (m *BitstreamSource) Close() error {
	m.Closed = true
	return nil
}

var _ ports.BitstreamSource = (*BitstreamSource)(nil)
