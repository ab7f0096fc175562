package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Mode != "auto" {
		t.Errorf("expected auto mode, got %q", cfg.Mode)
	}
	if cfg.FPSDen != 1 {
		t.Errorf("expected fps_den 1, got %d", cfg.FPSDen)
	}
	if cfg.PreviewInterval != 30 || cfg.PreviewColumns != 4 {
		t.Errorf("unexpected preview defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	content := `
input: clip.mp4
output: out.y4m
mode: raw
fps_num: 30
worker_threads: 8
preview: sheet.png
preview_columns: 6
theme:
  background_color: "#000000"
log_level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputPath != "clip.mp4" || cfg.OutputPath != "out.y4m" {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if cfg.Mode != "raw" {
		t.Errorf("expected raw mode, got %q", cfg.Mode)
	}
	if cfg.FPSNum != 30 || cfg.WorkerThreads != 8 {
		t.Errorf("unexpected decode settings: %+v", cfg)
	}
	if cfg.PreviewColumns != 6 {
		t.Errorf("expected 6 columns, got %d", cfg.PreviewColumns)
	}
	// Untouched keys keep their defaults.
	if cfg.PreviewInterval != 30 {
		t.Errorf("expected default interval preserved, got %d", cfg.PreviewInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want [4]uint8
	}{
		{"#ff8000", [4]uint8{255, 128, 0, 255}},
		{"1E1e1E", [4]uint8{30, 30, 30, 255}},
		{"", [4]uint8{0, 0, 0, 255}},
		{"#fff", [4]uint8{0, 0, 0, 255}},
	}
	for _, c := range cases {
		if got := ParseColor(c.in); got != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.InputPath = "in.mp4"
	cfg.OutputPath = "out.yuv"
	cfg.FPSNum = 25
	cfg.Theme.BackgroundColor = "#102030"

	oc := cfg.ToOrchestratorConfig()

	if oc.InputPath != "in.mp4" || oc.OutputPath != "out.yuv" {
		t.Errorf("unexpected paths: %+v", oc)
	}
	if oc.FPSNum != 25 || oc.FPSDen != 1 {
		t.Errorf("unexpected frame rate: %d/%d", oc.FPSNum, oc.FPSDen)
	}
	if oc.BackgroundColor != [4]uint8{16, 32, 48, 255} {
		t.Errorf("unexpected background color: %v", oc.BackgroundColor)
	}
}
