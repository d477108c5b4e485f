// Package reporter provides console sinks for run log output: a
// line-by-line echo for normal use and a progress-bar display for quiet
// runs.
package reporter

import (
	"fmt"

	"github.com/fatih/color"
)

// Console echoes every run log line to the terminal, warnings and errors
// colorized.
type Console struct {
	yellow *color.Color
	red    *color.Color
}

// NewConsole creates a console sink.
func NewConsole() *Console {
	return &Console{
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
	}
}

// Info prints an informational line.
func (c *Console) Info(msg string) {
	fmt.Println(msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	fmt.Printf("%s %s\n", c.yellow.Sprint("Warning:"), msg)
}

// Error prints an error line.
func (c *Console) Error(msg string) {
	fmt.Printf("%s %s\n", c.red.Sprint("Error:"), msg)
}

// TaskStarted is a no-op; the echoed "Processing task i/N" line already
// covers it.
func (c *Console) TaskStarted(int, int) {}
