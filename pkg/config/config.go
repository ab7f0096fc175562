// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/streamdec/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for streamdec.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Input handling
	Mode string `yaml:"mode"` // auto, packetized or raw

	// Decode
	FPSNum        int `yaml:"fps_num"`
	FPSDen        int `yaml:"fps_den"`
	WorkerThreads int `yaml:"worker_threads"`
	ChunkSize     int `yaml:"chunk_size"` // raw-mode read granularity in bytes

	// Preview
	PreviewPath      string `yaml:"preview"`
	PreviewInterval  int    `yaml:"preview_interval"`
	PreviewLimit     int    `yaml:"preview_limit"`
	PreviewColumns   int    `yaml:"preview_columns"`
	PreviewCellWidth int    `yaml:"preview_cell_width"`

	// Summary
	SummaryPath string `yaml:"summary"`

	// Style
	Theme ThemeConfig `yaml:"theme"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Quiet    bool   `yaml:"quiet"`
}

// ThemeConfig represents preview sheet theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	BorderColor     string `yaml:"border_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Mode: "auto",

		FPSDen: 1,

		PreviewInterval:  30,
		PreviewLimit:     24,
		PreviewColumns:   4,
		PreviewCellWidth: 320,

		Theme: ThemeConfig{
			BackgroundColor: "#1e1e1e",
			BorderColor:     "#505050",
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a #rrggbb color string into an RGBA array. Invalid
// strings come back black.
func ParseColor(hex string) [4]uint8 {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return [4]uint8{0, 0, 0, 255}
	}

	return [4]uint8{
		hexValue(hex[0])<<4 | hexValue(hex[1]),
		hexValue(hex[2])<<4 | hexValue(hex[3]),
		hexValue(hex[4])<<4 | hexValue(hex[5]),
		255,
	}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputPath:  c.InputPath,
		OutputPath: c.OutputPath,

		FPSNum:        c.FPSNum,
		FPSDen:        c.FPSDen,
		WorkerThreads: c.WorkerThreads,

		PreviewPath:      c.PreviewPath,
		PreviewInterval:  c.PreviewInterval,
		PreviewLimit:     c.PreviewLimit,
		PreviewColumns:   c.PreviewColumns,
		PreviewCellWidth: c.PreviewCellWidth,

		BackgroundColor: ParseColor(c.Theme.BackgroundColor),
		BorderColor:     ParseColor(c.Theme.BorderColor),
	}
}
