package pipeline

import (
	"image/color"

	"github.com/user/streamdec/pkg/ports"
)

// =============================================================================
// Decode Stage Types
// =============================================================================

// DecodeInput contains parameters for the decode stage.
type DecodeInput struct {
	FPSNum        int // Frame rate override numerator (0 = use stream timing)
	FPSDen        int // Frame rate override denominator
	WorkerThreads int // Engine worker threads (0 = engine default)

	// PreviewInterval samples every Nth decoded frame for the contact
	// sheet. Zero disables sampling.
	PreviewInterval int
	// PreviewLimit caps the number of sampled frames. Zero means no cap.
	PreviewLimit int
}

// DefaultDecodeInput returns DecodeInput with default values.
func DefaultDecodeInput() DecodeInput {
	return DecodeInput{
		FPSDen:          1,
		PreviewInterval: 0,
		PreviewLimit:    30,
	}
}

// DecodeResult contains the decode run output.
type DecodeResult struct {
	Frames        int                  // Frames delivered to the sink
	Units         int                  // Compressed units consumed
	Format        ports.FrameFormat    // Last negotiated output format
	Renegotiated  int                  // Output format changes past the first
	PreviewFrames []ports.PreviewFrame // Sampled frames, oldest first
	DurationMs    int64                // Wall-clock decode time
}

// =============================================================================
// Preview Stage Types
// =============================================================================

// PreviewInput contains parameters for contact-sheet rendering.
type PreviewInput struct {
	Frames  []ports.PreviewFrame
	Columns int
	Style   ports.SheetStyle
}

// DefaultPreviewInput returns PreviewInput with default values.
func DefaultPreviewInput() PreviewInput {
	return PreviewInput{
		Columns: 4,
		Style: ports.SheetStyle{
			CellWidth:       320,
			Gap:             8,
			BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
			BorderColor:     color.RGBA{R: 80, G: 80, B: 80, A: 255},
			BorderWidth:     1,
		},
	}
}

// PreviewResult contains the rendered contact sheet.
type PreviewResult struct {
	PNGData []byte
	Width   int
	Height  int
}
