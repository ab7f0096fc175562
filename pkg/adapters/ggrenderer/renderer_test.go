package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/streamdec/pkg/ports"
)

func solidFrame(w, h int, c color.RGBA, pts int64) ports.PreviewFrame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return ports.PreviewFrame{Image: img, PTS: pts}
}

func TestRenderSheet_GridDimensions(t *testing.T) {
	r := New()
	frames := []ports.PreviewFrame{
		solidFrame(64, 32, color.RGBA{R: 255, A: 255}, 0),
		solidFrame(64, 32, color.RGBA{G: 255, A: 255}, 33),
		solidFrame(64, 32, color.RGBA{B: 255, A: 255}, 66),
	}
	style := ports.SheetStyle{
		CellWidth:       100,
		Gap:             10,
		BackgroundColor: color.White,
	}

	img, err := r.RenderSheet(frames, 2, style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 columns, 2 rows; cell height 50 from the 2:1 aspect ratio.
	bounds := img.Bounds()
	if bounds.Dx() != 2*100+3*10 {
		t.Errorf("expected sheet width 230, got %d", bounds.Dx())
	}
	if bounds.Dy() != 2*50+3*10 {
		t.Errorf("expected sheet height 130, got %d", bounds.Dy())
	}
}

func TestRenderSheet_NoFrames(t *testing.T) {
	r := New()
	if _, err := r.RenderSheet(nil, 4, ports.SheetStyle{}); err == nil {
		t.Error("expected error for empty frame list")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	r := New()
	frame := solidFrame(8, 8, color.RGBA{R: 200, A: 255}, 0)

	data, err := r.EncodePNG(frame.Image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("unexpected decoded bounds: %v", decoded.Bounds())
	}
}
