package ports

import (
	"image"
	"image/color"
)

// PreviewFrame is one decoded frame sampled for the preview contact sheet.
type PreviewFrame struct {
	Image image.Image
	PTS   int64 // presentation timestamp in milliseconds
}

// SheetStyle defines contact-sheet styling.
type SheetStyle struct {
	CellWidth       int
	Gap             int
	BackgroundColor color.Color
	BorderColor     color.Color
	BorderWidth     float64
}

// Renderer abstracts the image operations used to build preview output.
type Renderer interface {
	// RenderSheet composes sampled frames into a contact-sheet grid with
	// the given number of columns.
	RenderSheet(frames []PreviewFrame, columns int, style SheetStyle) (image.Image, error)

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
