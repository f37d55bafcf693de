package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/kinectlapse/pkg/capture"
	"github.com/user/kinectlapse/pkg/ports"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kinectlapse.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Device != "/dev/video0" || cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("unexpected device defaults %+v", cfg)
	}
	if cfg.NumPictures != 1 || cfg.DelaySeconds != 0 || cfg.OutputPath != "./" {
		t.Errorf("unexpected schedule defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
device: /dev/video1
ir: true
count: 0
delay: 30
output: /srv/lapse
format: png
frame_timeout: 3s
render:
  max_width: 320
  caption: true
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Device != "/dev/video1" || !cfg.UseIRCamera || cfg.NumPictures != 0 || cfg.DelaySeconds != 30 {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.ImageFormat() != ports.FormatPNG {
		t.Errorf("expected png, got %v", cfg.ImageFormat())
	}
	if cfg.FrameTimeout != 3*time.Second {
		t.Errorf("expected 3s frame timeout, got %v", cfg.FrameTimeout)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Width != 640 || cfg.Quality != 90 {
		t.Errorf("expected defaults to survive, got %dx%d q%d", cfg.Width, cfg.Height, cfg.Quality)
	}
	if cfg.Render.CaptionFormat == "" {
		t.Error("expected default caption format")
	}
}

func TestLoadFromFile_Empty(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.NumPictures != 1 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromFile_UnknownKey(t *testing.T) {
	if _, err := LoadFromFile(writeConfig(t, "cout: 3\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative count", func(c *Config) { c.NumPictures = -1 }, "count"},
		{"negative delay", func(c *Config) { c.DelaySeconds = -5 }, "delay"},
		{"zero width", func(c *Config) { c.Width = 0 }, "size"},
		{"quality too high", func(c *Config) { c.Quality = 101 }, "quality"},
		{"negative max", func(c *Config) { c.Render.MaxHeight = -1 }, "max size"},
		{"bad format", func(c *Config) { c.Format = "gif" }, "format"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			var cfgErr *capture.ConfigError
			if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("expected ConfigError on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestToCaptureConfig(t *testing.T) {
	cfg := Defaults()
	cfg.UseIRCamera = true
	cfg.NumPictures = 5
	cfg.DelaySeconds = 10
	cfg.OutputPath = "/data"
	wake := make(chan struct{})

	cc := cfg.ToCaptureConfig(wake)

	if !cc.UseIRCamera || cc.NumPictures != 5 || cc.Delay != 10*time.Second || cc.OutputPath != "/data" {
		t.Errorf("unexpected capture config %+v", cc)
	}
	if cc.Wake == nil {
		t.Error("expected wake channel to be passed through")
	}
}

func TestToRenderAndSourceOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Render.MaxWidth = 320
	cfg.Render.Caption = true
	cfg.BufferCount = 4

	ro := cfg.ToRenderOptions()
	if ro.MaxWidth != 320 || !ro.Caption || !ro.Enabled() {
		t.Errorf("unexpected render options %+v", ro)
	}

	so := cfg.ToSourceOptions()
	if so.Width != 640 || so.Height != 480 || so.BufferCount != 4 {
		t.Errorf("unexpected source options %+v", so)
	}
}
