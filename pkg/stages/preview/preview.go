// Package preview implements the contact-sheet rendering stage.
package preview

import (
	"context"
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/user/streamdec/pkg/pipeline"
	"github.com/user/streamdec/pkg/ports"
)

// Stage renders sampled frames into a PNG contact sheet.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new preview stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger,
	}
}

// Execute renders the contact sheet and encodes it as PNG.
func (s *Stage) Execute(ctx context.Context, input pipeline.PreviewInput) (pipeline.PreviewResult, error) {
	result := pipeline.PreviewResult{}

	if len(input.Frames) == 0 {
		return result, fmt.Errorf("no preview frames sampled")
	}

	select {
	case <-ctx.Done():
		return result, ctx.Err()
	default:
	}

	s.logger.Info(l10n.F("Rendering contact sheet with %d frames", len(input.Frames)))

	sheet, err := s.renderer.RenderSheet(input.Frames, input.Columns, input.Style)
	if err != nil {
		return result, fmt.Errorf("render sheet: %w", err)
	}

	data, err := s.renderer.EncodePNG(sheet)
	if err != nil {
		return result, fmt.Errorf("encode sheet: %w", err)
	}

	bounds := sheet.Bounds()
	result.PNGData = data
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()

	return result, nil
}
