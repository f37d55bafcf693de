package capture

import (
	"fmt"
	"time"

	"github.com/user/kinectlapse/pkg/ports"
)

// Config contains the settings for one capture run.
type Config struct {
	// Sensor
	UseIRCamera bool // request IR_GRAY8 frames instead of RGB24

	// Schedule
	NumPictures int           // 0 = continuous
	Delay       time.Duration // pause after each capture

	// Output
	OutputPath string
	Overwrite  bool // reuse a taken filename instead of adding a _N suffix

	// Wake interrupts the current delay. nil disables it.
	Wake <-chan struct{}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		NumPictures: 1,
		OutputPath:  "./",
	}
}

// ConfigError reports an invalid setting. It is returned before any frame
// is requested.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s [%v] %s", e.Field, e.Value, e.Reason)
}

// Validate checks the schedule and the output directory.
func (c Config) Validate(fs ports.FileSystem) error {
	if c.NumPictures < 0 {
		return &ConfigError{Field: "count", Value: c.NumPictures, Reason: "must not be negative"}
	}
	if c.Delay < 0 {
		return &ConfigError{Field: "delay", Value: c.Delay, Reason: "must not be negative"}
	}
	return ValidateOutputDir(fs, c.OutputPath)
}

// ValidateOutputDir returns a *ConfigError unless path is an existing
// directory. The CLI calls it before starting a run.
func ValidateOutputDir(fs ports.FileSystem, path string) error {
	isDir, err := fs.IsDir(path)
	if err != nil {
		return &ConfigError{Field: "path", Value: path, Reason: fmt.Sprintf("cannot be inspected: %v", err)}
	}
	if isDir {
		return nil
	}
	if exists, _ := fs.Exists(path); !exists {
		return &ConfigError{Field: "path", Value: path, Reason: "does not exist"}
	}
	return &ConfigError{Field: "path", Value: path, Reason: "is not a directory"}
}
