// Package main provides the CLI entry point for kinectlapse.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/kinectlapse/pkg/adapters/ggrenderer"
	"github.com/user/kinectlapse/pkg/adapters/imagesink"
	"github.com/user/kinectlapse/pkg/adapters/logger"
	"github.com/user/kinectlapse/pkg/adapters/nullnotifier"
	"github.com/user/kinectlapse/pkg/adapters/nullrecorder"
	"github.com/user/kinectlapse/pkg/adapters/osfilesystem"
	"github.com/user/kinectlapse/pkg/adapters/rawlog"
	"github.com/user/kinectlapse/pkg/adapters/sdnotify"
	"github.com/user/kinectlapse/pkg/adapters/systemclock"
	"github.com/user/kinectlapse/pkg/adapters/webcamsource"
	"github.com/user/kinectlapse/pkg/capture"
	"github.com/user/kinectlapse/pkg/config"
	"github.com/user/kinectlapse/pkg/pipeline"
	"github.com/user/kinectlapse/pkg/ports"
	"github.com/user/kinectlapse/pkg/stages/render"
	"github.com/user/kinectlapse/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Capture    CaptureCmd    `cmd:"" default:"withargs" help:"Take pictures on a schedule (default command)."`
	Formats    FormatsCmd    `cmd:"" help:"List the pixel formats and frame sizes a device offers."`
	DumpRawlog DumpRawlogCmd `cmd:"" name:"dump-rawlog" help:"Print the records of a raw frame log."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`
}

// CaptureCmd defines the capture command. Unset flags fall back to the
// config file, then to built-in defaults.
type CaptureCmd struct {
	// Schedule
	IR    bool    `short:"i" name:"ir" help:"Take images using the IR camera."`
	Count *int    `short:"n" help:"Number of pictures to take (default 1, 0 = continuous)."`
	Delay *int    `short:"d" help:"Delay in seconds between pictures (default 0)."`
	Path  *string `short:"p" help:"Directory to store images in (default ./)."`

	// Device
	Device *string `help:"V4L2 device node (default /dev/video0)."`
	Width  *int    `help:"Requested frame width (default 640)."`
	Height *int    `help:"Requested frame height (default 480)."`

	// Output
	Format    string  `help:"Image format: jpeg, png, bmp or tiff (default jpeg)."`
	Quality   *int    `short:"q" help:"JPEG quality 1-100 (default 90)."`
	Overwrite bool    `help:"Overwrite files taken in the same second instead of numbering them."`
	Caption   bool    `help:"Stamp the capture time on each image."`
	MaxWidth  *int    `help:"Downscale images to at most this width."`
	MaxHeight *int    `help:"Downscale images to at most this height."`

	// Raw frames
	RawLog *string `placeholder:"DIR" help:"Also append every raw frame to a log in DIR."`
	Replay *string `placeholder:"FILE" help:"Read frames from a raw log instead of the device."`
	Loop   bool    `help:"Restart the replay log when it ends."`

	// Reporting
	Summary  *string `placeholder:"FILE" help:"Write a Markdown summary of the run to FILE."`
	Config   string  `short:"c" type:"existingfile" help:"YAML configuration file."`
	LogLevel string  `short:"l" help:"Log level: debug, info, warn, error or quiet (default info)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// FormatsCmd lists the device's capabilities.
type FormatsCmd struct {
	Device string `default:"/dev/video0" help:"V4L2 device node."`
}

// DumpRawlogCmd prints and optionally extracts raw log records.
type DumpRawlogCmd struct {
	File   string `arg:"" type:"existingfile" help:"Raw log file."`
	Limit  int    `default:"0" help:"Number of records to print (0 = all)."`
	Out    string `type:"path" help:"Decode each record and save it as an image in this directory."`
	Format string `default:"png" enum:"jpeg,jpg,png,bmp,tiff,tif" help:"Image format for --out."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("kinectlapse"),
		kong.Description("Take time-lapse pictures with a Kinect RGB or IR camera."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	var cfgErr *capture.ConfigError
	if errors.As(err, &cfgErr) {
		ctx.Stdout = os.Stderr
		_ = ctx.PrintUsage(true)
	}
	ctx.FatalIfErrorf(err)
}

// Run executes the capture command.
func (cmd *CaptureCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet || cfg.LogLevel == "quiet" {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	fs := osfilesystem.New()
	if err := capture.ValidateOutputDir(fs, cfg.OutputPath); err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals. SIGUSR1 cuts the current delay short.
	wake := make(chan struct{}, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sigCh)
	go watchSignals(sigCh, wake, cancel, func() { signal.Stop(sigCh) }, log)

	// Create adapters
	source, err := openSource(cfg, log)
	if err != nil {
		return err
	}
	defer source.Close()

	recorder, err := openRecorder(cfg, log)
	if err != nil {
		return err
	}
	defer recorder.Close()

	renderer := ggrenderer.New()
	sink := imagesink.New(fs, renderer, cfg.ImageFormat(), cfg.Quality)

	var renderStage pipeline.RenderStage
	if opts := cfg.ToRenderOptions(); opts.Enabled() {
		renderStage = render.NewStage(renderer, opts, log)
	}

	var notifier ports.Notifier = nullnotifier.New()
	if os.Getenv("NOTIFY_SOCKET") != "" {
		notifier = sdnotify.New()
	}

	ctrl := capture.New(source, sink, renderStage, recorder, fs, systemclock.New(), notifier, log)

	result, runErr := ctrl.Run(ctx, cfg.ToCaptureConfig(wake))

	summary := buildSummary(fs, cfg, result)
	log.Info("Run finished: %s", summarizer.StatusLine.Format(summary))

	if cfg.Summary != "" {
		if err := writeSummary(fs, cfg.Summary, summary); err != nil {
			log.Error("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", cfg.Summary)
		}
	}

	return runErr
}

// watchSignals turns SIGUSR1 into a wake-up and the first SIGINT/SIGTERM
// into cancellation. stop is called after cancelling so that a second
// interrupt reaches the default handler and kills the process.
func watchSignals(sigCh <-chan os.Signal, wake chan<- struct{}, cancel context.CancelFunc, stop func(), log ports.Logger) {
	for sig := range sigCh {
		if sig == syscall.SIGUSR1 {
			select {
			case wake <- struct{}{}:
			default:
			}
			continue
		}
		log.Warn("Interrupted, shutting down...")
		cancel()
		stop()
		return
	}
}

func openSource(cfg config.Config, log ports.Logger) (ports.FrameSource, error) {
	if cfg.Replay != "" {
		log.Debug("Replaying %s", cfg.Replay)
		return rawlog.Open(cfg.Replay, cfg.Loop)
	}
	return webcamsource.Open(cfg.Device, cfg.ToSourceOptions(), log)
}

func openRecorder(cfg config.Config, log ports.Logger) (ports.FrameRecorder, error) {
	if cfg.RawLogDir == "" {
		return nullrecorder.New(), nil
	}
	prefix := "rgb"
	if cfg.UseIRCamera {
		prefix = "ir"
	}
	w, err := rawlog.NewWriter(cfg.RawLogDir, prefix)
	if err != nil {
		return nil, err
	}
	log.Info("Writing raw frames to %s", w.Path())
	return w, nil
}

// buildConfig layers the config file and the flags over the defaults.
func (cmd *CaptureCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.IR {
		cfg.UseIRCamera = true
	}
	if cmd.Count != nil {
		cfg.NumPictures = *cmd.Count
	}
	if cmd.Delay != nil {
		cfg.DelaySeconds = *cmd.Delay
	}
	if cmd.Path != nil {
		cfg.OutputPath = *cmd.Path
	}
	if cmd.Device != nil {
		cfg.Device = *cmd.Device
	}
	if cmd.Width != nil {
		cfg.Width = *cmd.Width
	}
	if cmd.Height != nil {
		cfg.Height = *cmd.Height
	}
	if cmd.Format != "" {
		cfg.Format = cmd.Format
	}
	if cmd.Quality != nil {
		cfg.Quality = *cmd.Quality
	}
	if cmd.Overwrite {
		cfg.Overwrite = true
	}
	if cmd.Caption {
		cfg.Render.Caption = true
	}
	if cmd.MaxWidth != nil {
		cfg.Render.MaxWidth = *cmd.MaxWidth
	}
	if cmd.MaxHeight != nil {
		cfg.Render.MaxHeight = *cmd.MaxHeight
	}
	if cmd.RawLog != nil {
		cfg.RawLogDir = *cmd.RawLog
	}
	if cmd.Replay != nil {
		cfg.Replay = *cmd.Replay
	}
	if cmd.Loop {
		cfg.Loop = true
	}
	if cmd.Summary != nil {
		cfg.Summary = *cmd.Summary
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}

	return cfg, nil
}

func buildSummary(fs ports.FileSystem, cfg config.Config, result capture.Result) *summarizer.Summary {
	settings := summarizer.Settings{
		Source:      "webcam",
		Device:      cfg.Device,
		Camera:      "RGB",
		Format:      cfg.ImageFormat().String(),
		NumPictures: cfg.NumPictures,
		Delay:       cfg.ToCaptureConfig(nil).Delay,
		OutputPath:  cfg.OutputPath,
	}
	if cfg.Replay != "" {
		settings.Source = "replay"
		settings.Device = cfg.Replay
	}
	if cfg.UseIRCamera {
		settings.Camera = "IR"
	}

	return summarizer.NewBuilder().
		WithSettings(settings).
		WithResults(summarizer.Results{
			State:    result.State.String(),
			Attempts: result.Attempts,
			Saved:    result.Saved,
			Dropped:  result.Dropped,
			Failed:   result.Failed,
			Duration: result.Duration(),
			Bytes:    totalSize(fs, result.Files),
		}).
		WithFiles(result.Files).
		Build()
}

func writeSummary(fs ports.FileSystem, path string, summary *summarizer.Summary) error {
	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}

// totalSize sums the sizes of the saved files. Files removed since the run
// are skipped.
func totalSize(fs ports.FileSystem, files []string) int64 {
	var total int64
	for _, f := range files {
		if size, err := fs.Size(f); err == nil {
			total += size
		}
	}
	return total
}

// Run executes the formats command.
func (cmd *FormatsCmd) Run() error {
	src, err := webcamsource.Open(cmd.Device, webcamsource.DefaultOptions(), logger.NewNoop())
	if err != nil {
		return err
	}
	defer src.Close()

	infos := src.Formats()
	if len(infos) == 0 {
		fmt.Println(l10n.F("%s offers no pixel formats", cmd.Device))
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%s  %-16s %s\n", info.FourCC, info.Format, info.Description)
		for _, size := range info.Sizes {
			fmt.Printf("      %s\n", size)
		}
	}
	return nil
}

// Run executes the dump-rawlog command.
func (cmd *DumpRawlogCmd) Run() error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("open raw log: %w", err)
	}
	defer f.Close()

	reader, err := rawlog.NewReader(f)
	if err != nil {
		return err
	}

	var sink ports.ImageSink
	if cmd.Out != "" {
		format, err := ports.ParseImageFormat(cmd.Format)
		if err != nil {
			return err
		}
		sink = imagesink.New(osfilesystem.New(), ggrenderer.New(), format, 95)
	}

	for count := 0; cmd.Limit == 0 || count < cmd.Limit; count++ {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		mode := entry.Frame.Mode()
		fmt.Println(l10n.F("record %d logged=%s %s %dx%d timestamp=%d size=%d",
			count, entry.Logged.Format("2006-01-02T15:04:05.000"), mode.Format, mode.Width, mode.Height,
			entry.Frame.Timestamp(), entry.Size))

		if sink == nil {
			continue
		}
		img, ok, err := entry.Frame.Image()
		switch {
		case err != nil:
			fmt.Println(l10n.F("  skipped: %s", err))
		case !ok:
			fmt.Println(l10n.F("  skipped: no decoder for %s", mode.Format))
		default:
			name := fmt.Sprintf("%06d.%s", count, sink.Extension())
			if err := sink.Save(img, cmd.Out, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("kinectlapse version %s", version))
	return nil
}
