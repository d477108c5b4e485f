// Package probe enumerates the elementary streams inside a media file by
// invoking the external inspection command and parsing its diagnostic
// output.
package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/streamweld/streamweld/internal/ffmpeg"
	"github.com/streamweld/streamweld/internal/util"

	sterrors "github.com/streamweld/streamweld/internal/errors"
)

// Stream kind words as they appear in the diagnostic output. Anything
// else is accepted but bucketed as "other" during mapping.
const (
	TypeVideo    = "Video"
	TypeAudio    = "Audio"
	TypeSubtitle = "Subtitle"
)

// Stream is one elementary track found inside a probed file.
type Stream struct {
	// Index is the stream index within the file, unique and increasing
	// in probe order.
	Index int `json:"index"`
	// Type is the raw kind word from the diagnostic line.
	Type string `json:"type"`
	// Codec is the codec name, e.g. h264, flac, ass.
	Codec string `json:"codec"`
	// Language is the normalized language tag; "und" when absent.
	Language string `json:"language"`
	// OutputIndex is assigned by mapping and nil until then. Once set it
	// is never reassigned.
	OutputIndex *int `json:"output_index"`
}

// Result holds the outcome of probing one file. The embedded OutputLog,
// Warnings, and Errs slices carry the probe's own diagnostics and are
// folded into the run report by the caller.
type Result struct {
	Path     string   `json:"file_path"`
	CmdArgs  []string `json:"cmd_args"`
	Log      string   `json:"ffmpeg_log"`
	ExitCode int      `json:"ffmpeg_exit_code"`
	Success  bool     `json:"is_success"`
	Streams  []*Stream `json:"stream_info"`

	OutputLog []string `json:"-"`
	Warnings  []string `json:"-"`
	Errs      []error  `json:"-"`
}

func (r *Result) infof(format string, args ...any) {
	r.OutputLog = append(r.OutputLog, "Info: "+fmt.Sprintf(format, args...))
}

func (r *Result) errorf(format string, args ...any) {
	r.OutputLog = append(r.OutputLog, "Error: "+fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	r.OutputLog = append(r.OutputLog, "Warning: "+msg)
}

// Prober probes a single file for its stream layout.
type Prober interface {
	Probe(ctx context.Context, path string) *Result
}

// CommandProber probes files by running the external inspection tool.
type CommandProber struct {
	// Tool is the inspection command name, normally "ffmpeg".
	Tool string
	// Timeout bounds one probe invocation; zero means unbounded.
	Timeout time.Duration
	// Runner executes the command. Defaults to ExecRunner when nil.
	Runner ffmpeg.Runner
}

// NewCommandProber returns a prober backed by the given tool.
func NewCommandProber(tool string, timeout time.Duration) *CommandProber {
	return &CommandProber{
		Tool:    tool,
		Timeout: timeout,
		Runner:  ffmpeg.ExecRunner{Timeout: timeout},
	}
}

// Probe implements Prober. Exit codes 0 and 1 both count as a successful
// probe: the inspection tool exits 1 when no output file is given while
// still printing full stream metadata. Every other condition short of a
// missing file degrades to a warning and the file stays usable, possibly
// with an empty stream list.
func (p *CommandProber) Probe(ctx context.Context, path string) *Result {
	res := &Result{ExitCode: -1}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	res.Path = abs

	if !util.FileExists(abs) {
		if _, statErr := os.Stat(abs); statErr != nil {
			res.errorf("File %s not found", abs)
		} else {
			res.errorf("%s is not a file", abs)
		}
		return res
	}

	res.CmdArgs = []string{p.Tool, "-i", abs}
	res.infof("Reading the metadata of %s", filepath.Base(abs))
	res.infof("Executing: %s", util.JoinArgs(res.CmdArgs))

	runner := p.Runner
	if runner == nil {
		runner = ffmpeg.ExecRunner{Timeout: p.Timeout}
	}

	out, code, runErr := runner.CombinedOutput(ctx, res.CmdArgs[0], res.CmdArgs[1:]...)
	res.Log = out + "\n"
	res.ExitCode = code
	if runErr != nil {
		res.warnf("Caught exception when trying to read metadata of %s: %v", filepath.Base(abs), runErr)
		res.Errs = append(res.Errs, sterrors.NewProbeError("failed to read metadata of "+filepath.Base(abs), runErr))
	} else if code == 0 || code == 1 {
		res.infof("FFmpeg process exited with code: %d", code)
	} else {
		res.warnf("FFmpeg process terminated with code %d", code)
	}

	parseStreams(res)

	if len(res.Streams) == 0 {
		res.warnf("No stream found for %s", filepath.Base(abs))
	}

	res.Success = true
	return res
}
