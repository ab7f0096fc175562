// Package ggrenderer provides a contact-sheet renderer using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/streamdec/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderSheet lays sampled frames out in a grid, scaling each into a cell
// of the configured width while preserving its aspect ratio.
func (r *Renderer) RenderSheet(frames []ports.PreviewFrame, columns int, style ports.SheetStyle) (image.Image, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to render")
	}
	if columns <= 0 {
		columns = 1
	}

	cellW := style.CellWidth
	if cellW <= 0 {
		cellW = 320
	}
	// Cell height follows the first frame's aspect ratio; decoded frames
	// in one run share dimensions unless the stream renegotiated.
	first := frames[0].Image.Bounds()
	cellH := cellW * first.Dy() / first.Dx()

	rows := (len(frames) + columns - 1) / columns
	gap := style.Gap
	sheetW := columns*cellW + (columns+1)*gap
	sheetH := rows*cellH + (rows+1)*gap

	dc := gg.NewContext(sheetW, sheetH)
	dc.SetColor(style.BackgroundColor)
	dc.Clear()

	for i, frame := range frames {
		col := i % columns
		row := i / columns
		x := gap + col*(cellW+gap)
		y := gap + row*(cellH+gap)

		cell := image.NewRGBA(image.Rect(0, 0, cellW, cellH))
		draw.CatmullRom.Scale(cell, cell.Bounds(), frame.Image, frame.Image.Bounds(), draw.Over, nil)
		dc.DrawImage(cell, x, y)

		if style.BorderWidth > 0 {
			dc.SetColor(style.BorderColor)
			dc.SetLineWidth(style.BorderWidth)
			dc.DrawRectangle(float64(x), float64(y), float64(cellW), float64(cellH))
			dc.Stroke()
		}
	}

	return dc.Image(), nil
}

// EncodePNG encodes an image as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
