// Package main provides the CLI entry point for streamweld.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/streamweld/streamweld/internal/config"
	"github.com/streamweld/streamweld/internal/engine"
	"github.com/streamweld/streamweld/internal/logging"
	"github.com/streamweld/streamweld/internal/report"
	"github.com/streamweld/streamweld/internal/reporter"
)

const (
	appName    = "streamweld"
	appVersion = "0.3.1"
)

type mergeFlags struct {
	inputDir     string
	outputDir    string
	copyAll      bool
	dryRun       bool
	ffmpegLog    bool
	noLogFile    bool
	jsonFile     bool
	quiet        bool
	verbose      bool
	tool         string
	probeTimeout time.Duration
	mergeTimeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Merge companion audio and subtitle files into their matching videos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMergeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}

func newMergeCmd() *cobra.Command {
	var mf mergeFlags

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge every video in a folder with its companion files",
		Long: `Scans the input folder, pairs each video with audio and subtitle
files whose extension-stripped name prefix-matches the video's, probes
every file's stream layout, and runs one ffmpeg merge per video into
the output folder. Every non-fatal problem degrades to a warning in
the run report; only a missing or invalid folder stops the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), &mf)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&mf.inputDir, "input", "i", "", "input folder containing video and companion files")
	fs.StringVarP(&mf.outputDir, "output", "o", "", "output folder for merged containers and artifacts")
	fs.BoolVar(&mf.copyAll, "copy-all", false, "stream-copy every track type with a single -c copy flag")
	fs.BoolVar(&mf.dryRun, "dry-run", false, "build and log commands without executing ffmpeg or writing artifacts")
	fs.BoolVar(&mf.ffmpegLog, "ffmpeg-log", false, "copy the full ffmpeg output of each merge into the run log")
	fs.BoolVar(&mf.noLogFile, "no-log-file", false, "do not write output.log into the output folder")
	fs.BoolVar(&mf.jsonFile, "json", false, "write the structured report to output.json in the output folder")
	fs.BoolVarP(&mf.quiet, "quiet", "q", false, "show a progress bar instead of echoing every log line")
	fs.BoolVarP(&mf.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&mf.tool, "ffmpeg", config.DefaultTool, "ffmpeg command name or path")
	fs.DurationVar(&mf.probeTimeout, "probe-timeout", 0, "per-probe timeout (0 = unbounded)")
	fs.DurationVar(&mf.mergeTimeout, "merge-timeout", 0, "per-merge timeout (0 = unbounded)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runMerge(parent context.Context, mf *mergeFlags) error {
	level := logging.LevelInfo
	if mf.verbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	cfg := config.NewConfig(mf.inputDir, mf.outputDir)
	cfg.EncodeSubtitles = !mf.copyAll
	cfg.DryRun = mf.dryRun
	cfg.WriteFFmpegLog = mf.ffmpegLog
	cfg.SaveLogFile = !mf.noLogFile
	cfg.SaveJSONFile = mf.jsonFile
	cfg.ConsoleEcho = !mf.quiet
	cfg.Tool = mf.tool
	cfg.ProbeTimeout = mf.probeTimeout
	cfg.MergeTimeout = mf.mergeTimeout

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink report.Sink
	var progress *reporter.Progress
	if mf.quiet {
		progress = reporter.NewProgress()
		sink = progress
	} else {
		sink = reporter.NewConsole()
	}

	run := engine.New(cfg, engine.WithSink(sink)).Run(ctx)
	if progress != nil {
		progress.Finish()
		fmt.Fprintf(os.Stderr, "%d tasks done, %d success, %d failed, %d warnings\n",
			run.TaskCount, run.SuccessCount, run.FailedCount, run.WarningCount)
	}

	if run.Fatal {
		return fmt.Errorf("folder validation failed, no task executed")
	}
	if run.FailedCount > 0 {
		return fmt.Errorf("%d of %d merge tasks failed", run.FailedCount, run.TaskCount)
	}
	return nil
}
