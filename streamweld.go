// Package streamweld provides a Go library for merging companion audio
// and subtitle files into their matching video containers.
//
// Streamweld scans a folder, pairs each video with companion files whose
// extension-stripped name prefix-matches the video's, probes every
// file's stream layout through ffmpeg, computes a deterministic
// stream-to-output-track mapping, and drives one ffmpeg merge invocation
// per video. Codec work stays with ffmpeg; streamweld only decides which
// streams go where.
//
// Basic usage:
//
//	merger, err := streamweld.New(
//	    streamweld.WithJSONFile(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := merger.Merge(ctx, "input/", "output/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d tasks, %d succeeded, %d warnings\n",
//	    result.TaskCount, result.SuccessCount, result.WarningCount)
package streamweld

import (
	"context"
	"time"

	"github.com/streamweld/streamweld/internal/config"
	"github.com/streamweld/streamweld/internal/engine"
	"github.com/streamweld/streamweld/internal/report"
	"github.com/streamweld/streamweld/internal/reporter"

	sterrors "github.com/streamweld/streamweld/internal/errors"
)

// Merger is the main entry point for merge runs.
type Merger struct {
	config *config.Config
}

// Result summarizes a completed merge run.
type Result struct {
	TaskCount    int
	SuccessCount int
	FailedCount  int
	WarningCount int
	Warnings     []string
	Log          []string
	// Fatal reports that folder validation failed before any task ran.
	Fatal bool
}

// Option configures the merger.
type Option func(*config.Config)

// New creates a new Merger with the given options.
func New(opts ...Option) (*Merger, error) {
	cfg := config.NewConfig(".", ".")
	// Library callers consume the Result; the console stays quiet unless
	// explicitly enabled.
	cfg.ConsoleEcho = false

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Merger{config: cfg}, nil
}

// WithCopyAll stream-copies every track type with a single copy flag
// instead of leaving subtitle codec handling to ffmpeg. Incompatible
// subtitle formats may then fail to mux into the target container.
func WithCopyAll() Option {
	return func(c *config.Config) {
		c.EncodeSubtitles = false
	}
}

// WithDryRun builds and logs merge commands without spawning processes
// or writing artifacts.
func WithDryRun() Option {
	return func(c *config.Config) {
		c.DryRun = true
	}
}

// WithFFmpegLog copies each merge invocation's full output into the run
// log.
func WithFFmpegLog() Option {
	return func(c *config.Config) {
		c.WriteFFmpegLog = true
	}
}

// WithoutLogFile disables the output.log artifact.
func WithoutLogFile() Option {
	return func(c *config.Config) {
		c.SaveLogFile = false
	}
}

// WithJSONFile enables the output.json artifact.
func WithJSONFile() Option {
	return func(c *config.Config) {
		c.SaveJSONFile = true
	}
}

// WithConsoleEcho echoes every run log line to the console.
func WithConsoleEcho() Option {
	return func(c *config.Config) {
		c.ConsoleEcho = true
	}
}

// WithTool overrides the external command used for probing and merging.
func WithTool(tool string) Option {
	return func(c *config.Config) {
		c.Tool = tool
	}
}

// WithProbeTimeout bounds each probe invocation. Zero (the default)
// means unbounded.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *config.Config) {
		c.ProbeTimeout = d
	}
}

// WithMergeTimeout bounds each merge invocation. Zero (the default)
// means unbounded; a hung merge blocks the run.
func WithMergeTimeout(d time.Duration) Option {
	return func(c *config.Config) {
		c.MergeTimeout = d
	}
}

// Merge runs the full pipeline over inputDir, writing merged containers
// into outputDir. The returned Result is always complete; the error is
// non-nil only when folder validation failed before any task could run.
func (m *Merger) Merge(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	cfg := *m.config
	cfg.InputDir = inputDir
	cfg.OutputDir = outputDir

	var sink report.Sink = report.NullSink{}
	if cfg.ConsoleEcho {
		sink = reporter.NewConsole()
	}

	run := engine.New(&cfg, engine.WithSink(sink)).Run(ctx)

	result := &Result{
		TaskCount:    run.TaskCount,
		SuccessCount: run.SuccessCount,
		FailedCount:  run.FailedCount,
		WarningCount: run.WarningCount,
		Warnings:     run.Warnings,
		Log:          run.OutputLog,
		Fatal:        run.Fatal,
	}
	if run.Fatal {
		return result, sterrors.NewFatalInputError("folder validation failed, no task executed")
	}
	return result, nil
}
