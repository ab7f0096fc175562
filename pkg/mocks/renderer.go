package mocks

import (
	"image"

	"github.com/user/streamdec/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	RenderSheetFunc func(frames []ports.PreviewFrame, columns int, style ports.SheetStyle) (image.Image, error)
	EncodePNGFunc   func(img image.Image) ([]byte, error)

	// Recorded calls for verification
	SheetFrames  []ports.PreviewFrame
	SheetColumns int
	Encoded      []image.Image
}

func (m *Renderer) RenderSheet(frames []ports.PreviewFrame, columns int, style ports.SheetStyle) (image.Image, error) {
	m.SheetFrames = frames
	m.SheetColumns = columns
	if m.RenderSheetFunc != nil {
		return m.RenderSheetFunc(frames, columns, style)
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	m.Encoded = append(m.Encoded, img)
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	// Minimal PNG signature
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.Renderer = (*Renderer)(nil)
