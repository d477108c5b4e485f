package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// ExecResult captures one merge invocation.
type ExecResult struct {
	// Log is the combined stdout+stderr of the process.
	Log string
	// ExitCode is the process exit status; 0 means success.
	ExitCode int
	// Err is non-nil only when the process could not be spawned.
	Err error
}

// Executor runs assembled merge commands.
type Executor struct {
	// Timeout bounds one merge invocation; zero means unbounded, which
	// is the default for the merge path.
	Timeout time.Duration
	// Runner executes the command. Defaults to ExecRunner when nil.
	Runner Runner
}

// NewExecutor returns an executor with the given per-invocation timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		Timeout: timeout,
		Runner:  ExecRunner{Timeout: timeout},
	}
}

// Run spawns the merge command and blocks until it finishes.
func (e *Executor) Run(ctx context.Context, args []string) ExecResult {
	if len(args) == 0 {
		return ExecResult{ExitCode: -1, Err: fmt.Errorf("empty command")}
	}

	runner := e.Runner
	if runner == nil {
		runner = ExecRunner{Timeout: e.Timeout}
	}

	out, code, err := runner.CombinedOutput(ctx, args[0], args[1:]...)
	return ExecResult{Log: out + "\n", ExitCode: code, Err: err}
}

// muxSummaryRe matches the muxer's bracketed end-of-run report lines,
// e.g. "[out#0/matroska @ 00007f37c5a0b2c0] video:1234kb audio:567kb ...".
// A clean run produces exactly one such line; extra lines are usually
// warnings emitted through the same channel.
var muxSummaryRe = regexp.MustCompile(`\[(.+) @ ([0-9a-f]{16})\] (.+)`)

// SummaryLines extracts the muxer's bracketed report lines from a merge
// log, re-formatted for the run log.
func SummaryLines(log string) []string {
	matches := muxSummaryRe.FindAllStringSubmatch(log, -1)
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("[%s @ %s] %s", m[1], m[2], m[3]))
	}
	return lines
}
