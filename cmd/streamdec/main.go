// Package main provides the CLI entry point for streamdec.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/streamdec/pkg/adapters/de265engine"
	"github.com/user/streamdec/pkg/adapters/formatdetect"
	"github.com/user/streamdec/pkg/adapters/ggrenderer"
	"github.com/user/streamdec/pkg/adapters/logger"
	"github.com/user/streamdec/pkg/adapters/mp4source"
	"github.com/user/streamdec/pkg/adapters/osfilesystem"
	"github.com/user/streamdec/pkg/adapters/rawsource"
	"github.com/user/streamdec/pkg/adapters/yuvsink"
	"github.com/user/streamdec/pkg/config"
	"github.com/user/streamdec/pkg/orchestrator"
	"github.com/user/streamdec/pkg/ports"
	"github.com/user/streamdec/pkg/stages/decode"
	"github.com/user/streamdec/pkg/stages/preview"
	"github.com/user/streamdec/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "streamdec",
		Usage: l10n.T("Decode HEVC bitstreams into raw YUV output"),
		Commands: []*cli.Command{
			decodeCommand(),
			infoCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     l10n.T("Decode a bitstream file to raw YUV or Y4M"),
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output file path (.y4m or raw .yuv)")},
			&cli.StringFlag{Name: "config", Aliases: []string{"C"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "mode", Value: "auto", Usage: l10n.T("Input framing (auto, packetized, raw)")},
			&cli.IntFlag{Name: "fps-num", Usage: l10n.T("Frame rate override numerator")},
			&cli.IntFlag{Name: "fps-den", Value: 1, Usage: l10n.T("Frame rate override denominator")},
			&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, Usage: l10n.T("Engine worker threads (0 = core count)")},
			&cli.IntFlag{Name: "chunk-size", Usage: l10n.T("Raw-mode read size in bytes")},
			&cli.StringFlag{Name: "preview", Aliases: []string{"p"}, Usage: l10n.T("Write a PNG contact sheet to this path")},
			&cli.IntFlag{Name: "preview-interval", Usage: l10n.T("Sample every Nth frame for the contact sheet")},
			&cli.IntFlag{Name: "preview-columns", Usage: l10n.T("Contact sheet columns")},
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: l10n.T("Output decode summary to file (Markdown format)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runDecode,
	}
}

func runDecode(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("INPUT argument is required"))
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	source, container, err := openSource(cfg, log)
	if err != nil {
		return err
	}
	defer source.Close()

	sink, err := yuvsink.New(cfg.OutputPath, yuvsink.FormatForPath(cfg.OutputPath))
	if err != nil {
		return err
	}
	defer sink.Close()

	fs := osfilesystem.New()
	decodeStage := decode.NewStage(
		func() (ports.DecodeEngine, error) { return de265engine.New() },
		source, sink, log,
	)
	previewStage := preview.NewStage(ggrenderer.New(), log)
	orch := orchestrator.New(decodeStage, previewStage, fs, log)

	log.Info(l10n.F("Decoding %s (%s input)...", cfg.InputPath, container))

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	if cfg.SummaryPath != "" {
		if err := writeSummary(cfg, container, source, result); err != nil {
			log.Error(l10n.F("Failed to write output: %s", err))
			return err
		}
		log.Info(l10n.F("Summary saved to %s", cfg.SummaryPath))
	}

	return nil
}

// buildConfig layers CLI flags over the YAML file over the defaults.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.InputPath = c.Args().First()
	cfg.OutputPath = c.String("output")

	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("fps-num") {
		cfg.FPSNum = c.Int("fps-num")
	}
	if c.IsSet("fps-den") {
		cfg.FPSDen = c.Int("fps-den")
	}
	if c.IsSet("threads") {
		cfg.WorkerThreads = c.Int("threads")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("preview") {
		cfg.PreviewPath = c.String("preview")
	}
	if c.IsSet("preview-interval") {
		cfg.PreviewInterval = c.Int("preview-interval")
	}
	if c.IsSet("preview-columns") {
		cfg.PreviewColumns = c.Int("preview-columns")
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.String("summary")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	return cfg, nil
}

// openSource picks the bitstream source from the configured mode, sniffing
// the container when the mode is auto.
func openSource(cfg config.Config, log ports.Logger) (ports.BitstreamSource, formatdetect.Container, error) {
	container := formatdetect.ContainerUnknown
	switch cfg.Mode {
	case "packetized":
		container = formatdetect.ContainerMP4
	case "raw":
		container = formatdetect.ContainerAnnexB
	default:
		detected, err := formatdetect.DetectFromFile(cfg.InputPath)
		if err != nil {
			return nil, container, err
		}
		container = detected
		log.Debug(l10n.F("Detected %s input", string(container)))
	}

	switch container {
	case formatdetect.ContainerMP4:
		source, err := mp4source.New(cfg.InputPath)
		return source, container, err
	default:
		source, err := rawsource.New(cfg.InputPath, cfg.ChunkSize)
		return source, container, err
	}
}

// writeSummary collects run data into a markdown summary file.
func writeSummary(cfg config.Config, container formatdetect.Container, source ports.BitstreamSource, result orchestrator.RunResult) error {
	mode, _ := container.InputMode()

	codec := ""
	if state := source.InputState(); state != nil {
		codec = state.Codec
	}

	fs := osfilesystem.New()
	outputSize, _ := fs.Size(cfg.OutputPath)

	builder := summarizer.NewBuilder().
		WithInput(cfg.InputPath, string(container), codec, mode.String()).
		WithDecode(summarizer.DecodeInfo{
			Frames:        result.Frames,
			Units:         result.Units,
			Renegotiated:  result.Renegotiated,
			DurationMs:    result.DurationMs,
			WorkerThreads: cfg.WorkerThreads,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:     cfg.OutputPath,
			Width:    result.Format.Width,
			Height:   result.Format.Height,
			FPSNum:   result.Format.FPSNum,
			FPSDen:   result.Format.FPSDen,
			FileSize: outputSize,
		})
	if result.PreviewFrames > 0 {
		builder.WithPreview(summarizer.PreviewInfo{
			Path:        cfg.PreviewPath,
			Frames:      result.PreviewFrames,
			SheetWidth:  result.SheetWidth,
			SheetHeight: result.SheetHeight,
		})
	}

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
	return writer.Write(cfg.SummaryPath, builder.Build())
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Show bitstream information"),
		ArgsUsage: "INPUT",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New(l10n.T("INPUT argument is required"))
			}
			path := c.Args().First()

			container, err := formatdetect.DetectFromFile(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", l10n.T("Container"), container)

			if container != formatdetect.ContainerMP4 {
				return nil
			}

			source, err := mp4source.New(path)
			if err != nil {
				return err
			}
			defer source.Close()

			info := source.Info()
			fmt.Printf("%s: %s\n", l10n.T("Codec"), info.Codec)
			fmt.Printf("%s: %d\n", l10n.T("Track"), info.TrackID)
			fmt.Printf("%s: %d\n", l10n.T("Timescale"), info.Timescale)
			fmt.Printf("%s: %d\n", l10n.T("Samples"), info.SampleCount)
			fmt.Printf("%s: %d ms\n", l10n.T("Duration"), info.DurationMs)
			if state := source.InputState(); state != nil {
				fmt.Printf("%s: %d\n", l10n.T("Parameter sets"), len(state.ParameterSets))
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("streamdec version %s", version))
			return nil
		},
	}
}
