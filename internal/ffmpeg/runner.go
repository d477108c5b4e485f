// Package ffmpeg assembles and executes external ffmpeg invocations for
// probing and merging. All process access goes through the Runner
// interface so tests can feed canned diagnostic output instead of
// spawning real processes.
package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/streamweld/streamweld/internal/errors"
	"github.com/streamweld/streamweld/internal/logging"
)

// Runner executes an external command and captures its combined
// stdout+stderr output.
type Runner interface {
	// CombinedOutput runs name with args and returns the combined output
	// and exit code. The returned error is non-nil only when the process
	// could not be started or waited on; a non-zero exit code alone is
	// reported through the exit code, with err nil.
	CombinedOutput(ctx context.Context, name string, args ...string) (output string, exitCode int, err error)
}

// ExecRunner runs commands through os/exec. A zero Timeout means the
// invocation is unbounded; a hung tool blocks the run.
type ExecRunner struct {
	Timeout time.Duration
}

// CombinedOutput implements Runner.
func (r ExecRunner) CombinedOutput(ctx context.Context, name string, args ...string) (string, int, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	logging.Debug("executing external command", "cmd", name, "args", args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	logging.Debug("external command finished", "cmd", name, "elapsed", time.Since(start))

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return buf.String(), exitErr.ExitCode(), nil
		}
		return buf.String(), -1, errors.NewCommandStartError(name, err)
	}
	return buf.String(), 0, nil
}
