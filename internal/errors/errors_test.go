package errors

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindFatalInput, "Fatal input error"},
		{KindProbe, "Probe error"},
		{KindExecution, "Execution error"},
		{KindPersistence, "Persistence error"},
		{KindCommand, "Command error"},
		{KindConfig, "Configuration error"},
		{ErrorKind(99), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindProbe,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "Probe error: test message: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{
		Kind:    KindConfig,
		Message: "config issue",
	}

	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewExecutionError("test", underlying)

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should find the underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := NewFatalInputError("test1")
	err2 := NewFatalInputError("test2")
	err3 := NewConfigError("test3")

	if !errors.Is(err1, err2) {
		t.Error("errors with the same kind should match")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different kinds should not match")
	}
}

func TestNewCommandStartError(t *testing.T) {
	underlying := errors.New("no such file")
	err := NewCommandStartError("ffmpeg", underlying)

	if err.Kind != KindCommand {
		t.Errorf("Kind = %v, want %v", err.Kind, KindCommand)
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("errors.As() should find the CommandError")
	}
	if cmdErr.Command != "ffmpeg" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "ffmpeg")
	}
	expected := "failed to execute ffmpeg: no such file"
	if cmdErr.Error() != expected {
		t.Errorf("CommandError.Error() = %q, want %q", cmdErr.Error(), expected)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should reach the spawn error through both wrappers")
	}
}

func TestIsKind(t *testing.T) {
	wrapped := NewProbeError("probe failed", errors.New("boom"))

	if !IsKind(wrapped, KindProbe) {
		t.Error("IsKind() should match the error's kind")
	}
	if IsKind(wrapped, KindExecution) {
		t.Error("IsKind() should reject a different kind")
	}
	if IsKind(errors.New("plain"), KindProbe) {
		t.Error("IsKind() should reject a plain error")
	}
	if !IsFatalInput(NewFatalInputError("bad folder")) {
		t.Error("IsFatalInput() should match a fatal input error")
	}
	if IsFatalInput(wrapped) {
		t.Error("IsFatalInput() should reject other kinds")
	}
}
