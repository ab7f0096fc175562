package decoder

import (
	"fmt"

	"github.com/user/streamdec/pkg/ports"
)

// assembleFrame copies a decoded picture into one contiguous output buffer
// allocated from the sink.
//
// Each of the three planes is copied row by row, width bytes per row, so
// the destination is tightly packed even when a source plane carries stride
// padding. Strides are read per plane; they need not be uniform. The
// picture is released back to the engine on every path, including an
// allocation failure, so no engine picture slot leaks.
func assembleFrame(sink ports.FrameSink, format ports.FrameFormat, pic ports.Picture) (*ports.Frame, error) {
	defer pic.Release()

	dest, err := sink.AllocateFrame(format.FrameSize())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputAllocation, err)
	}

	offset := 0
	for plane := 0; plane < ports.PlaneCount; plane++ {
		width := pic.Width(plane)
		height := pic.Height(plane)
		src, stride := pic.Plane(plane)
		for row := 0; row < height; row++ {
			copy(dest[offset:offset+width], src[row*stride:row*stride+width])
			offset += width
		}
	}

	return &ports.Frame{
		Data:   dest[:offset],
		PTS:    pic.PTS(),
		Format: format,
	}, nil
}
