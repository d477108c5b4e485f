package report

// Sink receives every run log line as it is produced, plus task
// boundaries for progress display. Implementations must not block; the
// run loop calls them inline.
type Sink interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	// TaskStarted announces that task current of total is beginning.
	TaskStarted(current, total int)
}

// NullSink discards all output.
type NullSink struct{}

func (NullSink) Info(string)          {}
func (NullSink) Warn(string)          {}
func (NullSink) Error(string)         {}
func (NullSink) TaskStarted(int, int) {}
