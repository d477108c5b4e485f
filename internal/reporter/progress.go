package reporter

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Progress shows a task-level progress bar instead of echoing the full
// run log. Warnings and errors still surface above the bar; info lines
// are dropped.
type Progress struct {
	bar    *progressbar.ProgressBar
	yellow *color.Color
	red    *color.Color
}

// NewProgress creates a progress-bar sink.
func NewProgress() *Progress {
	return &Progress{
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
	}
}

// Info drops informational lines; the bar is the feedback.
func (p *Progress) Info(string) {}

// Warn prints a warning above the bar.
func (p *Progress) Warn(msg string) {
	p.clear()
	fmt.Fprintf(os.Stderr, "%s %s\n", p.yellow.Sprint("Warning:"), msg)
}

// Error prints an error above the bar.
func (p *Progress) Error(msg string) {
	p.clear()
	fmt.Fprintf(os.Stderr, "%s %s\n", p.red.Sprint("Error:"), msg)
}

// TaskStarted advances the bar to the current task.
func (p *Progress) TaskStarted(current, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Merging"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = p.bar.Set(current - 1)
}

// Finish completes and clears the bar.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func (p *Progress) clear() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}
