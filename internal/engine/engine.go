// Package engine drives a merge run end to end: folder validation, file
// discovery, the per-video probe/map/build/execute loop, the post-run
// usage check, and artifact persistence.
//
// The run is strictly sequential. One external invocation executes at a
// time and every phase mutates the single report.Run owned by the loop,
// so no locking is needed anywhere.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/streamweld/streamweld/internal/config"
	"github.com/streamweld/streamweld/internal/discovery"
	"github.com/streamweld/streamweld/internal/ffmpeg"
	"github.com/streamweld/streamweld/internal/logging"
	"github.com/streamweld/streamweld/internal/mapping"
	"github.com/streamweld/streamweld/internal/matching"
	"github.com/streamweld/streamweld/internal/media"
	"github.com/streamweld/streamweld/internal/probe"
	"github.com/streamweld/streamweld/internal/report"
	"github.com/streamweld/streamweld/internal/util"

	sterrors "github.com/streamweld/streamweld/internal/errors"
)

// OutputContainer is the container extension every merged file gets.
const OutputContainer = ".mkv"

// Engine runs merge tasks for one configuration.
type Engine struct {
	cfg      *config.Config
	prober   probe.Prober
	executor *ffmpeg.Executor
	sink     report.Sink
}

// Option configures an Engine.
type Option func(*Engine)

// WithProber replaces the default command-backed prober. Tests use this
// to feed canned diagnostic text.
func WithProber(p probe.Prober) Option {
	return func(e *Engine) { e.prober = p }
}

// WithMergeRunner replaces the process runner used for merge execution.
func WithMergeRunner(r ffmpeg.Runner) Option {
	return func(e *Engine) { e.executor.Runner = r }
}

// WithSink sets the console echo sink.
func WithSink(s report.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// New creates an engine for cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		prober:   probe.NewCommandProber(cfg.Tool, cfg.ProbeTimeout),
		executor: ffmpeg.NewExecutor(cfg.MergeTimeout),
		sink:     report.NullSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the whole merge run and always returns a completed
// report, even when every task failed or validation stopped the run
// before the first task.
func (e *Engine) Run(ctx context.Context) *report.Run {
	run := report.NewRun(e.sink)
	fatal := e.validateFolders(run)

	var files []media.File
	var usage []int
	taskID := 0

	if !fatal {
		var excluded []string
		var err error
		files, excluded, err = discovery.Scan(e.cfg.InputDir)
		if err != nil {
			run.Warnf("Failed to list input folder %s: %v", e.cfg.InputDir, err)
			run.CaptureErr(err)
			fatal = true
		}
		for _, path := range excluded {
			run.Infof("Exclude %s in the input folder", path)
		}

		usage = make([]int, len(files))
		usageIndex := make(map[string]int, len(files))
		for i, f := range files {
			usageIndex[f.Path] = i
		}
		markUsed := func(path string) {
			if i, ok := usageIndex[path]; ok {
				usage[i]++
			}
		}

		videos := discovery.Videos(files)
		audio := discovery.Audio(files)
		subtitles := discovery.Subtitles(files)
		logging.Debug("input folder scanned",
			"files", len(files), "videos", len(videos),
			"audio", len(audio), "subtitles", len(subtitles))

		for _, video := range videos {
			taskID++
			e.sink.TaskStarted(taskID, len(videos))
			run.Infof("Processing task %d/%d", taskID, len(videos))
			e.processVideo(ctx, run, taskID, video, audio, subtitles, markUsed)
		}
	}

	if !fatal {
		e.usageCheck(run, files, usage)
	}

	logPath := filepath.Join(e.cfg.OutputDir, report.LogFileName)
	jsonPath := filepath.Join(e.cfg.OutputDir, report.JSONFileName)
	if !fatal {
		if e.cfg.PersistLog() && util.FileExists(logPath) {
			run.Warnf("Log file %s already exists, will be overwritten", logPath)
			_ = os.Remove(logPath)
		}
		if e.cfg.PersistJSON() && util.FileExists(jsonPath) {
			run.Warnf("JSON file %s already exists, will be overwritten", jsonPath)
			_ = os.Remove(jsonPath)
		}
	}

	if taskID == 0 && !fatal {
		run.Warnf("No task is executed")
	}
	run.Infof("%d tasks done, %d success, %d failed, %d warnings",
		run.TaskCount, run.SuccessCount, run.FailedCount, run.WarningCount)

	if !fatal {
		if e.cfg.PersistLog() {
			if err := run.WriteLog(logPath); err != nil {
				logging.Error("failed to save log artifact", "path", logPath, "err", err)
				e.sink.Error(err.Error())
			}
		}
		if e.cfg.PersistJSON() {
			if err := run.WriteJSON(jsonPath); err != nil {
				logging.Error("failed to save JSON artifact", "path", jsonPath, "err", err)
				e.sink.Error(err.Error())
			}
		}
	}

	run.Fatal = fatal
	return run
}

// validateFolders checks the input folder and, for live runs, prepares
// the output folder. Failures here skip every remaining phase.
func (e *Engine) validateFolders(run *report.Run) bool {
	info, err := os.Stat(e.cfg.InputDir)
	if err != nil {
		run.Warnf("Input folder %s not found", e.cfg.InputDir)
		return true
	}
	if !info.IsDir() {
		run.Warnf("Input path %s is not a folder", e.cfg.InputDir)
		return true
	}

	// Dry runs spawn nothing and write nothing, so the output folder is
	// left alone entirely.
	if e.cfg.DryRun {
		return false
	}

	if _, err := os.Stat(e.cfg.OutputDir); err != nil {
		if mkErr := util.EnsureDirectory(e.cfg.OutputDir); mkErr != nil {
			run.Warnf("Failed to create output folder %s: %v", e.cfg.OutputDir, mkErr)
			run.CaptureErr(mkErr)
			return true
		}
		run.Warnf("Output folder %s not found, created it", e.cfg.OutputDir)
	}
	if !util.DirectoryExists(e.cfg.OutputDir) {
		run.Warnf("Output path %s is not a folder", e.cfg.OutputDir)
		return true
	}
	if !util.DirectoryEmpty(e.cfg.OutputDir) {
		run.Warnf("Output folder %s is not empty", e.cfg.OutputDir)
	}
	return false
}

// processVideo handles one task: probe the video and its companions, map
// streams, build the merge command, and execute or dry-run it. A failed
// task never halts the run.
func (e *Engine) processVideo(
	ctx context.Context,
	run *report.Run,
	taskID int,
	video media.File,
	audio, subtitles []media.File,
	markUsed func(string),
) {
	inputs := e.gatherInputs(ctx, run, video, audio, subtitles, markUsed)

	m := mapping.Build(run, video, inputs)

	outputPath := filepath.Join(e.cfg.OutputDir, video.Stem()+OutputContainer)
	task := &report.Task{
		ID:       taskID,
		ExitCode: -1,
		CmdArgs:  mapping.BuildMergeArgs(e.cfg.Tool, m, outputPath, !e.cfg.EncodeSubtitles),
	}
	for i, in := range inputs {
		task.Inputs = append(task.Inputs, report.NewInputFile(i, in.Probe))
	}

	e.execute(ctx, run, task, len(inputs), outputPath)
}

// gatherInputs probes the video and every prefix-matched companion in
// encounter order and increments the usage counter for each inclusion.
func (e *Engine) gatherInputs(
	ctx context.Context,
	run *report.Run,
	video media.File,
	audio, subtitles []media.File,
	markUsed func(string),
) []*mapping.Input {
	var inputs []*mapping.Input

	add := func(f media.File, diff string) {
		markUsed(f.Path)
		run.Infof("Input file #%d: %s", len(inputs), f.Path)
		res := e.prober.Probe(ctx, f.Path)
		run.MergeProbe(res)
		inputs = append(inputs, &mapping.Input{File: f, Diff: diff, Probe: res})
	}

	add(video, "")
	for _, a := range audio {
		if m := matching.Match(video.Stem(), a.Stem()); m.OK {
			add(a, m.Diff)
		}
	}
	for _, s := range subtitles {
		if m := matching.Match(video.Stem(), s.Stem()); m.OK {
			add(s, m.Diff)
		}
	}
	return inputs
}

// execute runs or dry-runs the assembled merge command and finalizes the
// task.
func (e *Engine) execute(ctx context.Context, run *report.Run, task *report.Task, inputCount int, outputPath string) {
	if e.cfg.DryRun {
		run.Infof("Merge %d files into %s", inputCount, outputPath)
		run.Infof("Command: %s", util.JoinArgs(task.CmdArgs))
		task.Log = "FFmpeg process is disabled"
		task.ExitCode = 0
		run.AddSuccess(task)
		return
	}

	if util.FileExists(outputPath) {
		run.Warnf("Output file %s already exists, will be overwritten", outputPath)
		_ = os.Remove(outputPath)
	}

	run.Infof("Merging %d files into %s", inputCount, outputPath)
	run.Infof("Executing: %s", util.JoinArgs(task.CmdArgs))

	res := e.executor.Run(ctx, task.CmdArgs)
	task.Log = res.Log
	task.ExitCode = res.ExitCode

	if res.Err != nil {
		run.Errorf("Caught exception when trying to merge %d files into %s: %v", inputCount, outputPath, res.Err)
		run.CaptureErr(sterrors.NewExecutionError(
			fmt.Sprintf("merge %d files into %s", inputCount, outputPath), res.Err))
		run.AddFailure(task)
		return
	}

	if e.cfg.WriteFFmpegLog {
		run.AppendRaw(task.Log)
	}

	summary := ffmpeg.SummaryLines(task.Log)
	if !e.cfg.WriteFFmpegLog {
		for _, line := range summary {
			run.Infof("FFmpeg: %s", line)
		}
	}
	if res.ExitCode == 0 && len(summary) > 1 {
		run.Warnf("FFmpeg may have reported %d warnings, check the log for details", len(summary)-1)
	}
	if res.ExitCode == 0 && len(summary) < 1 {
		run.Warnf("Unable to find FFmpeg output summary.")
	}

	if res.ExitCode == 0 {
		run.Infof("FFmpeg process exited with code: %d", res.ExitCode)
		run.Infof("Merge %d files into %s successfully", inputCount, outputPath)
		run.AddSuccess(task)
	} else {
		run.Errorf("FFmpeg process terminated with code %d", res.ExitCode)
		run.Errorf("Merge %d files into %s failed", inputCount, outputPath)
		run.AddFailure(task)
	}
}

// usageCheck reports files no task consumed and files consumed more than
// once.
func (e *Engine) usageCheck(run *report.Run, files []media.File, usage []int) {
	for i, f := range files {
		switch {
		case usage[i] == 0:
			run.Warnf("File %s is never used", f.Base())
		case usage[i] > 1:
			run.Warnf("File %s is used %d times", f.Base(), usage[i])
		}
	}
}
