// Package decode implements the bitstream decoding stage.
package decode

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/streamdec/pkg/decoder"
	"github.com/user/streamdec/pkg/pipeline"
	"github.com/user/streamdec/pkg/ports"
)

// Stage decodes a compressed bitstream into frames delivered to a sink.
type Stage struct {
	newEngine func() (ports.DecodeEngine, error)
	source    ports.BitstreamSource
	sink      ports.FrameSink
	logger    ports.Logger
}

// NewStage creates a new decode stage.
func NewStage(newEngine func() (ports.DecodeEngine, error), source ports.BitstreamSource, sink ports.FrameSink, logger ports.Logger) *Stage {
	return &Stage{
		newEngine: newEngine,
		source:    source,
		sink:      sink,
		logger:    logger,
	}
}

// Execute decodes the whole source, delivering every frame to the sink and
// sampling preview frames along the way. The source is drained to the end:
// after the last unit the engine is flushed so reordered pictures come out.
func (s *Stage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.DecodeResult, error) {
	result := pipeline.DecodeResult{}
	startedAt := time.Now()

	adapter := decoder.New(decoder.Options{
		NewEngine:     s.newEngine,
		Sink:          s.sink,
		Logger:        s.logger,
		Mode:          s.source.Mode(),
		FPSNum:        input.FPSNum,
		FPSDen:        input.FPSDen,
		WorkerThreads: input.WorkerThreads,
	})
	if err := adapter.Start(); err != nil {
		return result, err
	}
	defer adapter.Stop()

	if state := s.source.InputState(); state != nil {
		adapter.SetInputState(state)
	}
	if input.PreviewInterval > 0 {
		s.logger.Debug(l10n.F("Sampling every %d frames for preview", input.PreviewInterval))
	}

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		unit, err := s.source.NextUnit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read unit: %w", err)
		}
		result.Units++

		// Re-offer the unit until the decoder consumes it; while the
		// engine is saturated each offer surfaces one pending frame.
		for {
			sig, consumed, err := adapter.HandleUnit(unit)
			if err != nil {
				return result, err
			}
			if sig == decoder.SignalFrameReady {
				if err := s.pullOne(adapter, input, &result); err != nil {
					return result, err
				}
			}
			if consumed {
				break
			}
		}
	}

	// End of stream: flush out pictures held back for reordering.
	for {
		sig, err := adapter.Drain()
		if err != nil {
			return result, err
		}
		if sig != decoder.SignalFrameReady {
			break
		}
		if err := s.pullOne(adapter, input, &result); err != nil {
			return result, err
		}
	}

	if format, ok := adapter.Format(); ok {
		result.Format = format
	}
	result.DurationMs = time.Since(startedAt).Milliseconds()
	s.logger.Info(l10n.F("Decoded %d frames in %d ms", result.Frames, result.DurationMs))

	return result, nil
}

// pullOne retrieves one pending frame and accounts for it.
func (s *Stage) pullOne(adapter *decoder.Adapter, input pipeline.DecodeInput, result *pipeline.DecodeResult) error {
	frame, err := adapter.PullFrame()
	if err != nil {
		return err
	}
	if frame == nil {
		return nil
	}

	if result.Frames > 0 && frame.Format != result.Format {
		result.Renegotiated++
		s.logger.Info(l10n.F("Output format changed to %dx%d", frame.Format.Width, frame.Format.Height))
	}
	result.Format = frame.Format
	result.Frames++

	if input.PreviewInterval > 0 &&
		(result.Frames-1)%input.PreviewInterval == 0 &&
		(input.PreviewLimit <= 0 || len(result.PreviewFrames) < input.PreviewLimit) {
		result.PreviewFrames = append(result.PreviewFrames, ports.PreviewFrame{
			Image: frameImage(frame),
			PTS:   frame.PTS,
		})
	}
	return nil
}

// frameImage views a tightly packed 4:2:0 frame as an image.YCbCr without
// copying. Each frame owns its buffer, so holding the view is safe.
func frameImage(frame *ports.Frame) *image.YCbCr {
	w, h := frame.Format.Width, frame.Format.Height
	cw, ch := (w+1)/2, (h+1)/2
	ySize, cSize := w*h, cw*ch

	return &image.YCbCr{
		Y:              frame.Data[:ySize],
		Cb:             frame.Data[ySize : ySize+cSize],
		Cr:             frame.Data[ySize+cSize : ySize+2*cSize],
		YStride:        w,
		CStride:        cw,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, w, h),
	}
}
