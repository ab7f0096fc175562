// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"fmt"
	"image/color"

	"github.com/ideamans/go-l10n"
	"github.com/user/streamdec/pkg/pipeline"
	"github.com/user/streamdec/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputPath  string
	OutputPath string

	// Decode
	FPSNum        int
	FPSDen        int
	WorkerThreads int

	// Preview sheet; empty path disables it
	PreviewPath      string
	PreviewInterval  int
	PreviewLimit     int
	PreviewColumns   int
	PreviewCellWidth int

	// Style
	BackgroundColor [4]uint8 // RGBA
	BorderColor     [4]uint8 // RGBA
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPSDen: 1,

		PreviewInterval:  30,
		PreviewLimit:     24,
		PreviewColumns:   4,
		PreviewCellWidth: 320,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	decodeStage  pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult]
	previewStage pipeline.Stage[pipeline.PreviewInput, pipeline.PreviewResult]
	fs           ports.FileSystem
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult],
	previewStage pipeline.Stage[pipeline.PreviewInput, pipeline.PreviewResult],
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		decodeStage:  decodeStage,
		previewStage: previewStage,
		fs:           fs,
		logger:       logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.T("Starting decode pipeline"))

	// 1. Decode the bitstream
	decoded, err := o.decodeStage.Execute(ctx, o.buildDecodeInput(config))
	if err != nil {
		return RunResult{}, fmt.Errorf("decode stage: %w", err)
	}
	o.logger.Info(l10n.F("Output saved to %s", config.OutputPath))

	result := RunResult{
		Frames:       decoded.Frames,
		Units:        decoded.Units,
		Renegotiated: decoded.Renegotiated,
		DurationMs:   decoded.DurationMs,
		Format:       decoded.Format,
	}

	// 2. Render the preview sheet (optional)
	if config.PreviewPath != "" && len(decoded.PreviewFrames) > 0 {
		sheet, err := o.previewStage.Execute(ctx, o.buildPreviewInput(config, decoded))
		if err != nil {
			return RunResult{}, fmt.Errorf("preview stage: %w", err)
		}
		if err := o.fs.WriteFile(config.PreviewPath, sheet.PNGData); err != nil {
			o.logger.Error(l10n.F("Failed to write output: %s", err))
			return RunResult{}, fmt.Errorf("write preview: %w", err)
		}
		o.logger.Info(l10n.F("Preview sheet saved to %s", config.PreviewPath))

		result.PreviewFrames = len(decoded.PreviewFrames)
		result.SheetWidth = sheet.Width
		result.SheetHeight = sheet.Height
	}

	o.logger.Info(l10n.T("Decode completed successfully"))
	return result, nil
}

func (o *Orchestrator) buildDecodeInput(config Config) pipeline.DecodeInput {
	input := pipeline.DefaultDecodeInput()
	input.FPSNum = config.FPSNum
	input.FPSDen = config.FPSDen
	input.WorkerThreads = config.WorkerThreads
	if config.PreviewPath != "" {
		input.PreviewInterval = config.PreviewInterval
		input.PreviewLimit = config.PreviewLimit
	}
	return input
}

func (o *Orchestrator) buildPreviewInput(config Config, decoded pipeline.DecodeResult) pipeline.PreviewInput {
	input := pipeline.DefaultPreviewInput()
	input.Frames = decoded.PreviewFrames
	if config.PreviewColumns > 0 {
		input.Columns = config.PreviewColumns
	}
	if config.PreviewCellWidth > 0 {
		input.Style.CellWidth = config.PreviewCellWidth
	}
	if config.BackgroundColor != [4]uint8{} {
		input.Style.BackgroundColor = rgbaFromArray(config.BackgroundColor)
	}
	if config.BorderColor != [4]uint8{} {
		input.Style.BorderColor = rgbaFromArray(config.BorderColor)
	}
	return input
}

func rgbaFromArray(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Decode information
	Frames       int
	Units        int
	Renegotiated int
	DurationMs   int64
	Format       ports.FrameFormat

	// Preview information
	PreviewFrames int
	SheetWidth    int
	SheetHeight   int
}
