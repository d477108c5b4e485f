// Package report holds the structured run report: per-task records,
// run-wide counters, the ordered diagnostic log, and artifact
// persistence. The Run type doubles as the mutable run context passed
// through every phase; it is additive only and owned exclusively by the
// single driving loop.
package report

import (
	"fmt"

	"github.com/streamweld/streamweld/internal/probe"
)

// InputFile is one probed input of a task, in encounter order: the video
// first, then matched audio, then matched subtitle files.
type InputFile struct {
	Index    int             `json:"index"`
	Path     string          `json:"file_path"`
	Log      string          `json:"ffmpeg_log"`
	ExitCode int             `json:"ffmpeg_exit_code"`
	Success  bool            `json:"is_success"`
	CmdArgs  []string        `json:"cmd_args"`
	Streams  []*probe.Stream `json:"stream_info"`
}

// NewInputFile wraps a probe result as a task input.
func NewInputFile(index int, res *probe.Result) *InputFile {
	return &InputFile{
		Index:    index,
		Path:     res.Path,
		Log:      res.Log,
		ExitCode: res.ExitCode,
		Success:  res.Success,
		CmdArgs:  res.CmdArgs,
		Streams:  res.Streams,
	}
}

// Task is the record of one video's merge. Created when processing of the
// video starts, finalized after execution, then appended to the run.
type Task struct {
	ID       int          `json:"task_id"`
	Success  bool         `json:"is_success"`
	Log      string       `json:"ffmpeg_log"`
	ExitCode int          `json:"ffmpeg_exit_code"`
	CmdArgs  []string     `json:"cmd_args"`
	Inputs   []*InputFile `json:"input_files"`
}

// Run is the run-wide report. All mutation goes through the methods
// below; execution is strictly sequential so no locking is needed.
type Run struct {
	TaskCount    int      `json:"task_count"`
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	WarningCount int      `json:"warning_count"`
	Warnings     []string `json:"warning_list"`
	OutputLog    []string `json:"output_log"`
	Exceptions   []string `json:"exception"`
	Tasks        []*Task  `json:"task"`

	// Fatal reports that folder validation failed and all task phases
	// were skipped. Not part of the persisted report.
	Fatal bool `json:"-"`

	sink Sink
}

// NewRun creates an empty run report echoing every log line to sink.
// A nil sink disables the echo.
func NewRun(sink Sink) *Run {
	if sink == nil {
		sink = NullSink{}
	}
	return &Run{
		Warnings:   []string{},
		OutputLog:  []string{},
		Exceptions: []string{},
		Tasks:      []*Task{},
		sink:       sink,
	}
}

// Infof appends an informational line to the run log.
func (r *Run) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.OutputLog = append(r.OutputLog, "Info: "+msg)
	r.sink.Info(msg)
}

// Warnf records a warning: counted, listed, logged, echoed.
func (r *Run) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.WarningCount++
	r.Warnings = append(r.Warnings, msg)
	r.OutputLog = append(r.OutputLog, "Warning: "+msg)
	r.sink.Warn(msg)
}

// Errorf appends an error line to the run log. Errors are task-level
// conditions; they never abort the run.
func (r *Run) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.OutputLog = append(r.OutputLog, "Error: "+msg)
	r.sink.Error(msg)
}

// AppendRaw appends pre-formatted text (such as a captured external tool
// log) to the run log without a level prefix and without echoing.
func (r *Run) AppendRaw(text string) {
	r.OutputLog = append(r.OutputLog, text)
}

// CaptureErr records an exception without affecting control flow.
func (r *Run) CaptureErr(err error) {
	if err == nil {
		return
	}
	r.Exceptions = append(r.Exceptions, err.Error())
}

// MergeProbe folds a probe result's own diagnostics into the run.
func (r *Run) MergeProbe(res *probe.Result) {
	r.WarningCount += len(res.Warnings)
	r.Warnings = append(r.Warnings, res.Warnings...)
	for _, line := range res.OutputLog {
		r.OutputLog = append(r.OutputLog, line)
		r.echoPrefixed(line)
	}
	for _, err := range res.Errs {
		r.CaptureErr(err)
	}
}

// echoPrefixed routes an already-prefixed log line to the sink.
func (r *Run) echoPrefixed(line string) {
	switch {
	case len(line) > 9 && line[:9] == "Warning: ":
		r.sink.Warn(line[9:])
	case len(line) > 7 && line[:7] == "Error: ":
		r.sink.Error(line[7:])
	case len(line) > 6 && line[:6] == "Info: ":
		r.sink.Info(line[6:])
	default:
		r.sink.Info(line)
	}
}

// AddSuccess finalizes a successful task.
func (r *Run) AddSuccess(t *Task) {
	t.Success = true
	r.TaskCount++
	r.SuccessCount++
	r.Tasks = append(r.Tasks, t)
}

// AddFailure finalizes a failed task.
func (r *Run) AddFailure(t *Task) {
	t.Success = false
	r.TaskCount++
	r.FailedCount++
	r.Tasks = append(r.Tasks, t)
}
