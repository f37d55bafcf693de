// Package capture runs the timed acquisition loop: take a frame, decode it,
// save it, wait, repeat.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/pipeline"
	"github.com/user/kinectlapse/pkg/ports"
)

// Controller drives a FrameSource on a schedule and hands decoded images
// to an ImageSink. It is not safe for concurrent Runs.
type Controller struct {
	source   ports.FrameSource
	sink     ports.ImageSink
	render   pipeline.RenderStage
	recorder ports.FrameRecorder
	fs       ports.FileSystem
	clock    ports.Clock
	notifier ports.Notifier
	logger   ports.Logger
}

// New creates a new Controller. A nil render stage saves frames as decoded.
func New(
	source ports.FrameSource,
	sink ports.ImageSink,
	render pipeline.RenderStage,
	recorder ports.FrameRecorder,
	fs ports.FileSystem,
	clock ports.Clock,
	notifier ports.Notifier,
	logger ports.Logger,
) *Controller {
	if render == nil {
		render = pipeline.Passthrough
	}
	return &Controller{
		source:   source,
		sink:     sink,
		render:   render,
		recorder: recorder,
		fs:       fs,
		clock:    clock,
		notifier: notifier,
		logger:   logger.WithComponent("capture"),
	}
}

// Run validates config and captures until the picture count is reached,
// the source fails or runs out, or ctx is cancelled. Per-frame decode and
// save failures are counted in the Result and do not stop the run.
func (c *Controller) Run(ctx context.Context, config Config) (Result, error) {
	result := Result{State: Validating, Started: c.clock.Now()}

	if err := config.Validate(c.fs); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Field == "path" && cfgErr.Reason == "is not a directory" {
			c.logger.Error("Error: path [%s] is not a directory", config.OutputPath)
		} else {
			c.logger.Error("Invalid configuration: %s", err)
		}
		result.State = Aborted
		result.Finished = c.clock.Now()
		return result, err
	}

	format := frame.FormatFor(config.UseIRCamera)
	if config.NumPictures > 0 {
		c.logger.Info("Taking %d picture(s)", config.NumPictures)
	} else {
		c.logger.Info("Taking pictures continuously")
	}

	c.notify(c.notifier.Ready())
	result.State = Capturing
	names := newNamer(c.fs, c.logger, config.OutputPath, c.sink.Extension(), config.Overwrite)

	for i := 0; config.NumPictures == 0 || i < config.NumPictures; i++ {
		if ctx.Err() != nil {
			c.logger.Info("Capture cancelled after %d snapshot(s)", result.Attempts)
			return c.finish(result, Cancelled), nil
		}

		if config.NumPictures > 0 {
			c.logger.Info("Taking snapshot (%d of %d)", i+1, config.NumPictures)
		} else {
			c.logger.Info("Taking snapshot (%d, continuous)", i+1)
		}

		result.Attempts++
		f, err := c.source.TakeSnapshot(ctx, format)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Capture cancelled after %d snapshot(s)", result.Attempts-1)
				return c.finish(result, Cancelled), nil
			}
			if errors.Is(err, io.EOF) {
				result.Attempts--
				c.logger.Info("Source exhausted after %d snapshot(s)", result.Attempts)
				break
			}
			c.logger.Error("Failed to take snapshot: %s", err)
			return c.finish(result, Aborted), fmt.Errorf("take snapshot: %w", err)
		}

		c.handle(ctx, config, f, names, &result)
		c.sleep(ctx, config)
	}

	c.logger.Info("Execution complete")
	return c.finish(result, Done), nil
}

// handle records, decodes, renders and saves one frame.
func (c *Controller) handle(ctx context.Context, config Config, f *frame.RawFrame, names *namer, result *Result) {
	if c.recorder.Enabled() {
		if err := c.recorder.Record(f); err != nil {
			c.logger.Warn("Failed to record raw frame: %s", err)
		}
	}

	img, ok, err := f.Image()
	if err != nil {
		c.logger.Warn("Dropping frame: %s", err)
		result.Dropped++
		return
	}
	if !ok {
		c.logger.Debug("Dropping %s frame: no decoder for format", f.Mode().Format)
		result.Dropped++
		return
	}

	// A frame already in hand is finished even if ctx is cancelled meanwhile.
	capturedAt := c.clock.Now()
	out, err := c.render.Execute(context.WithoutCancel(ctx), pipeline.RenderInput{
		Image:      img,
		CapturedAt: capturedAt,
	})
	if err != nil {
		c.logger.Warn("Dropping frame: %s", err)
		result.Dropped++
		return
	}

	name, renamed, err := names.next(capturedAt)
	if err != nil {
		c.logger.Error("Failed to save %s: %s", capturedAt.Format(FileTimeLayout), err)
		result.Failed++
		return
	}
	if renamed {
		c.logger.Warn("%s exists, saving as %s", capturedAt.Format(FileTimeLayout)+"."+c.sink.Extension(), name)
	}
	if err := c.sink.Save(out, config.OutputPath, name); err != nil {
		c.logger.Error("Failed to save %s: %s", name, err)
		result.Failed++
		return
	}

	path := filepath.Join(config.OutputPath, name)
	result.Saved++
	result.Files = append(result.Files, path)
	c.logger.Info("Saved %s", path)
	c.notify(c.notifier.Status(fmt.Sprintf("Saved %d picture(s)", result.Saved)))
}

// sleep waits for the configured delay. Wake and cancellation cut it short.
func (c *Controller) sleep(ctx context.Context, config Config) {
	c.logger.Info("Sleeping for %s", config.Delay)
	select {
	case <-c.clock.After(config.Delay):
	case <-config.Wake:
		c.logger.Warn("Sleep interrupted")
	case <-ctx.Done():
		c.logger.Warn("Sleep interrupted")
	}
}

func (c *Controller) finish(result Result, state State) Result {
	result.State = state
	result.Finished = c.clock.Now()
	c.notify(c.notifier.Stopping())
	return result
}

func (c *Controller) notify(err error) {
	if err != nil {
		c.logger.Warn("Failed to notify supervisor: %s", err)
	}
}
