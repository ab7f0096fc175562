package decoder

import (
	"fmt"

	"github.com/user/streamdec/pkg/ports"
)

// negotiator detects picture-dimension changes and triggers downstream
// format renegotiation exactly once per change.
type negotiator struct {
	sink ports.FrameSink

	// configured framerate override; a zero numerator means "derive from
	// the stream".
	fpsNum int
	fpsDen int

	negotiated bool
	format     ports.FrameFormat
}

// check compares the picture's dimensions against the negotiated format and
// renegotiates when they differ (including the first picture, where no
// prior format exists). The stored format is updated only after downstream
// accepts; a rejection is fatal and leaves the old format in place.
func (n *negotiator) check(pic ports.Picture) error {
	width := pic.Width(0)
	height := pic.Height(0)
	if n.negotiated && width == n.format.Width && height == n.format.Height {
		return nil
	}

	format := ports.FrameFormat{
		Width:  width,
		Height: height,
		FPSDen: 1,
	}
	if n.fpsNum > 0 {
		format.FPSNum = n.fpsNum
		format.FPSDen = n.fpsDen
	}

	if err := n.sink.Negotiate(format); err != nil {
		return fmt.Errorf("%w: %v", ErrNegotiation, err)
	}
	n.format = format
	n.negotiated = true
	return nil
}

// reset forgets the negotiated format, forcing renegotiation on the next
// picture. Called on stop.
func (n *negotiator) reset() {
	n.negotiated = false
	n.format = ports.FrameFormat{}
}
