package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamweld/streamweld/internal/probe"
)

// recordingSink captures echoed lines per level.
type recordingSink struct {
	infos, warns, errs []string
}

func (s *recordingSink) Info(msg string)      { s.infos = append(s.infos, msg) }
func (s *recordingSink) Warn(msg string)      { s.warns = append(s.warns, msg) }
func (s *recordingSink) Error(msg string)     { s.errs = append(s.errs, msg) }
func (s *recordingSink) TaskStarted(_, _ int) {}

func TestRunCounters(t *testing.T) {
	r := NewRun(nil)

	r.AddSuccess(&Task{ID: 0})
	r.AddSuccess(&Task{ID: 1})
	r.AddFailure(&Task{ID: 2})

	assert.Equal(t, 3, r.TaskCount)
	assert.Equal(t, 2, r.SuccessCount)
	assert.Equal(t, 1, r.FailedCount)
	assert.Equal(t, r.TaskCount, r.SuccessCount+r.FailedCount)
	assert.True(t, r.Tasks[0].Success)
	assert.False(t, r.Tasks[2].Success)
}

func TestRunLogPrefixesAndEcho(t *testing.T) {
	sink := &recordingSink{}
	r := NewRun(sink)

	r.Infof("processing %s", "A.mkv")
	r.Warnf("odd file %s", "B.txt")
	r.Errorf("merge failed")
	r.AppendRaw("raw ffmpeg text")

	want := []string{
		"Info: processing A.mkv",
		"Warning: odd file B.txt",
		"Error: merge failed",
		"raw ffmpeg text",
	}
	assert.Equal(t, want, r.OutputLog)
	assert.Equal(t, 1, r.WarningCount)
	assert.Equal(t, []string{"odd file B.txt"}, r.Warnings)

	assert.Equal(t, []string{"processing A.mkv"}, sink.infos)
	assert.Equal(t, []string{"odd file B.txt"}, sink.warns)
	assert.Equal(t, []string{"merge failed"}, sink.errs)
}

func TestRunMergeProbe(t *testing.T) {
	sink := &recordingSink{}
	r := NewRun(sink)
	res := &probe.Result{
		OutputLog: []string{
			"Info: Reading the metadata of A.mkv",
			"Warning: No stream found for A.mkv",
		},
		Warnings: []string{"No stream found for A.mkv"},
		Errs:     []error{errors.New("boom")},
	}

	r.MergeProbe(res)

	assert.Equal(t, 1, r.WarningCount)
	assert.Equal(t, []string{"No stream found for A.mkv"}, r.Warnings)
	assert.Equal(t, res.OutputLog, r.OutputLog)
	assert.Equal(t, []string{"boom"}, r.Exceptions)
	// Echo strips the level prefixes again.
	assert.Equal(t, []string{"Reading the metadata of A.mkv"}, sink.infos)
	assert.Equal(t, []string{"No stream found for A.mkv"}, sink.warns)
}

func TestRunCaptureNilErr(t *testing.T) {
	r := NewRun(nil)
	r.CaptureErr(nil)
	assert.Empty(t, r.Exceptions)
}

func TestWriteLogJoinsLines(t *testing.T) {
	r := NewRun(nil)
	r.Infof("first")
	r.Warnf("second")

	path := filepath.Join(t.TempDir(), LogFileName)
	require.NoError(t, r.WriteLog(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Info: first\nWarning: second", string(data))
}

func TestWriteJSONShape(t *testing.T) {
	r := NewRun(nil)
	r.Warnf("something odd")
	task := &Task{
		ID:       0,
		Log:      "muxed",
		ExitCode: 0,
		CmdArgs:  []string{"ffmpeg", "-i", "A.mkv"},
		Inputs: []*InputFile{NewInputFile(0, &probe.Result{
			Path:    "/in/A.mkv",
			Success: true,
			Streams: []*probe.Stream{{Index: 0, Type: probe.TypeVideo, Codec: "h264", Language: "und"}},
		})},
	}
	r.AddSuccess(task)

	path := filepath.Join(t.TempDir(), JSONFileName)
	require.NoError(t, r.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{
		"task_count", "success_count", "failed_count", "warning_count",
		"warning_list", "output_log", "exception", "task",
	} {
		assert.Contains(t, doc, key)
	}
	tasks := doc["task"].([]any)
	require.Len(t, tasks, 1)
	taskDoc := tasks[0].(map[string]any)
	for _, key := range []string{
		"task_id", "is_success", "ffmpeg_log", "ffmpeg_exit_code",
		"cmd_args", "input_files",
	} {
		assert.Contains(t, taskDoc, key)
	}
	inputDoc := taskDoc["input_files"].([]any)[0].(map[string]any)
	assert.Equal(t, "/in/A.mkv", inputDoc["file_path"])
	streamDoc := inputDoc["stream_info"].([]any)[0].(map[string]any)
	assert.Nil(t, streamDoc["output_index"])

	// Pretty-printed with four-space indent.
	assert.True(t, strings.HasPrefix(string(data), "{\n    \""))
}

func TestWriteLogFailsOnBadPath(t *testing.T) {
	r := NewRun(nil)
	err := r.WriteLog(filepath.Join(t.TempDir(), "missing", "output.log"))
	assert.Error(t, err)
}
