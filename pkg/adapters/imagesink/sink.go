// Package imagesink persists captured images as encoded files.
package imagesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/kinectlapse/pkg/ports"
)

// Sink encodes images with a Renderer and writes them through a FileSystem.
type Sink struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	format   ports.ImageFormat
	quality  int
}

// New creates a new Sink. quality only applies to JPEG.
func New(fs ports.FileSystem, renderer ports.Renderer, format ports.ImageFormat, quality int) *Sink {
	return &Sink{
		fs:       fs,
		renderer: renderer,
		format:   format,
		quality:  quality,
	}
}

// Extension returns the file extension of the configured format.
func (s *Sink) Extension() string {
	return s.format.Extension()
}

// Save encodes img and writes it to dir/name. An existing file is replaced.
func (s *Sink) Save(img image.Image, dir, name string) error {
	path := filepath.Join(dir, name)

	data, err := s.renderer.EncodeImage(img, s.format, s.quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Ensure Sink implements ports.ImageSink
var _ ports.ImageSink = (*Sink)(nil)
