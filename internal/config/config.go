// Package config provides configuration types and defaults for streamweld.
package config

import (
	"time"

	"github.com/streamweld/streamweld/internal/errors"
)

// Default constants.
const (
	// DefaultTool is the external command used for both probing and
	// merging.
	DefaultTool = "ffmpeg"

	// DefaultProbeTimeout bounds one probe invocation. Zero means
	// unbounded: a hung inspection tool blocks the run.
	DefaultProbeTimeout time.Duration = 0

	// DefaultMergeTimeout bounds one merge invocation. Zero means
	// unbounded.
	DefaultMergeTimeout time.Duration = 0
)

// Config holds all settings for a merge run.
type Config struct {
	// InputDir is the folder scanned for video and companion files.
	InputDir string

	// OutputDir receives merged containers and optional artifacts.
	OutputDir string

	// EncodeSubtitles leaves subtitle codec handling to the external
	// tool (video and audio still stream-copied). When false a single
	// copy-everything flag is used instead, which can fail on subtitle
	// formats the target container rejects.
	EncodeSubtitles bool

	// DryRun builds and logs commands without spawning the merge
	// process. Forces artifact persistence off.
	DryRun bool

	// WriteFFmpegLog copies each merge invocation's full output into the
	// run log instead of just the muxer summary lines.
	WriteFFmpegLog bool

	// SaveLogFile persists output.log into the output folder.
	SaveLogFile bool

	// SaveJSONFile persists output.json into the output folder.
	SaveJSONFile bool

	// ConsoleEcho echoes every run log line to the console.
	ConsoleEcho bool

	// Tool is the external command name or path.
	Tool string

	// ProbeTimeout bounds a probe invocation; zero is unbounded.
	ProbeTimeout time.Duration

	// MergeTimeout bounds a merge invocation; zero is unbounded.
	MergeTimeout time.Duration
}

// NewConfig creates a configuration with default values.
func NewConfig(inputDir, outputDir string) *Config {
	return &Config{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		EncodeSubtitles: true,
		SaveLogFile:     true,
		ConsoleEcho:     true,
		Tool:            DefaultTool,
		ProbeTimeout:    DefaultProbeTimeout,
		MergeTimeout:    DefaultMergeTimeout,
	}
}

// Validate checks the configuration for structural problems. Folder
// existence is not checked here; that belongs to the run itself so the
// outcome lands in the report.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.NewConfigError("input folder is required")
	}
	if c.OutputDir == "" && !c.DryRun {
		return errors.NewConfigError("output folder is required")
	}
	if c.Tool == "" {
		return errors.NewConfigError("external tool name is required")
	}
	if c.ProbeTimeout < 0 || c.MergeTimeout < 0 {
		return errors.NewConfigError("timeouts must not be negative")
	}
	return nil
}

// PersistLog reports whether the log artifact should be written.
// Dry runs never persist artifacts.
func (c *Config) PersistLog() bool {
	return c.SaveLogFile && !c.DryRun
}

// PersistJSON reports whether the JSON artifact should be written.
func (c *Config) PersistJSON() bool {
	return c.SaveJSONFile && !c.DryRun
}
