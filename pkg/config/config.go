// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/kinectlapse/pkg/adapters/webcamsource"
	"github.com/user/kinectlapse/pkg/capture"
	"github.com/user/kinectlapse/pkg/pipeline"
	"github.com/user/kinectlapse/pkg/ports"
)

// Config represents the full configuration for kinectlapse.
type Config struct {
	// Device
	Device       string        `yaml:"device"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	BufferCount  int           `yaml:"buffer_count"`
	FrameTimeout time.Duration `yaml:"frame_timeout"`

	// Schedule
	UseIRCamera  bool `yaml:"ir"`
	NumPictures  int  `yaml:"count"`
	DelaySeconds int  `yaml:"delay"`

	// Output
	OutputPath string       `yaml:"output"`
	Format     string       `yaml:"format"`
	Quality    int          `yaml:"quality"`
	Overwrite  bool         `yaml:"overwrite"`
	Render     RenderConfig `yaml:"render"`

	// Raw frames
	RawLogDir string `yaml:"raw_log"`
	Replay    string `yaml:"replay"`
	Loop      bool   `yaml:"loop"`

	// Reporting
	Summary  string `yaml:"summary"`
	LogLevel string `yaml:"log_level"`
}

// RenderConfig represents post-processing options.
type RenderConfig struct {
	MaxWidth      int    `yaml:"max_width"`
	MaxHeight     int    `yaml:"max_height"`
	Caption       bool   `yaml:"caption"`
	CaptionFormat string `yaml:"caption_format"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	src := webcamsource.DefaultOptions()
	return Config{
		// Device
		Device:       "/dev/video0",
		Width:        int(src.Width),
		Height:       int(src.Height),
		BufferCount:  int(src.BufferCount),
		FrameTimeout: src.FrameTimeout,

		// Schedule
		NumPictures: 1,

		// Output
		OutputPath: "./",
		Format:     "jpeg",
		Quality:    90,
		Render: RenderConfig{
			CaptionFormat: pipeline.DefaultCaptionFormat,
		},

		// Reporting
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
// Unknown keys are rejected.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that can be checked without touching the
// device or the file system. Errors are *capture.ConfigError.
func (c Config) Validate() error {
	switch {
	case c.NumPictures < 0:
		return &capture.ConfigError{Field: "count", Value: c.NumPictures, Reason: "must not be negative"}
	case c.DelaySeconds < 0:
		return &capture.ConfigError{Field: "delay", Value: c.DelaySeconds, Reason: "must not be negative"}
	case c.Width <= 0 || c.Height <= 0:
		return &capture.ConfigError{Field: "size", Value: fmt.Sprintf("%dx%d", c.Width, c.Height), Reason: "must be positive"}
	case c.BufferCount < 0:
		return &capture.ConfigError{Field: "buffer_count", Value: c.BufferCount, Reason: "must not be negative"}
	case c.Quality < 1 || c.Quality > 100:
		return &capture.ConfigError{Field: "quality", Value: c.Quality, Reason: "must be between 1 and 100"}
	case c.Render.MaxWidth < 0 || c.Render.MaxHeight < 0:
		return &capture.ConfigError{Field: "max size", Value: fmt.Sprintf("%dx%d", c.Render.MaxWidth, c.Render.MaxHeight), Reason: "must not be negative"}
	}
	if _, err := ports.ParseImageFormat(c.Format); err != nil {
		return &capture.ConfigError{Field: "format", Value: c.Format, Reason: "must be one of jpeg, png, bmp, tiff"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "quiet":
	default:
		return &capture.ConfigError{Field: "log_level", Value: c.LogLevel, Reason: "must be one of debug, info, warn, error, quiet"}
	}
	return nil
}

// ImageFormat returns the parsed output format.
func (c Config) ImageFormat() ports.ImageFormat {
	f, _ := ports.ParseImageFormat(c.Format)
	return f
}

// ToCaptureConfig converts Config to capture.Config.
func (c Config) ToCaptureConfig(wake <-chan struct{}) capture.Config {
	return capture.Config{
		UseIRCamera: c.UseIRCamera,
		NumPictures: c.NumPictures,
		Delay:       time.Duration(c.DelaySeconds) * time.Second,
		OutputPath:  c.OutputPath,
		Overwrite:   c.Overwrite,
		Wake:        wake,
	}
}

// ToRenderOptions converts the render section to pipeline.RenderOptions.
func (c Config) ToRenderOptions() pipeline.RenderOptions {
	return pipeline.RenderOptions{
		MaxWidth:      c.Render.MaxWidth,
		MaxHeight:     c.Render.MaxHeight,
		Caption:       c.Render.Caption,
		CaptionFormat: c.Render.CaptionFormat,
	}
}

// ToSourceOptions converts the device section to webcamsource.Options.
func (c Config) ToSourceOptions() webcamsource.Options {
	return webcamsource.Options{
		Width:        uint32(c.Width),
		Height:       uint32(c.Height),
		BufferCount:  uint32(c.BufferCount),
		FrameTimeout: c.FrameTimeout,
	}
}
