// Package errors provides structured error types for streamweld operations.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindFatalInput represents a missing or invalid input/output folder.
	// This is the only kind that aborts a run.
	KindFatalInput ErrorKind = iota
	// KindProbe represents stream-probe failures.
	KindProbe
	// KindExecution represents merge execution failures.
	KindExecution
	// KindPersistence represents log/report artifact problems.
	KindPersistence
	// KindCommand represents external command spawn errors.
	KindCommand
	// KindConfig represents configuration validation errors.
	KindConfig
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFatalInput:
		return "Fatal input error"
	case KindProbe:
		return "Probe error"
	case KindExecution:
		return "Execution error"
	case KindPersistence:
		return "Persistence error"
	case KindCommand:
		return "Command error"
	case KindConfig:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// CommandError represents a failure to spawn an external command. A
// non-zero exit status is not an error at this level; it is reported
// through the exit code in the run report.
type CommandError struct {
	Command    string
	Underlying error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for streamweld operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewFatalInputError creates a run-fatal folder validation error.
func NewFatalInputError(message string) *CoreError {
	return &CoreError{Kind: KindFatalInput, Message: message}
}

// NewProbeError creates a stream-probe error.
func NewProbeError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbe, Message: message, Underlying: underlying}
}

// NewExecutionError creates a merge execution error.
func NewExecutionError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindExecution, Message: message, Underlying: underlying}
}

// NewPersistenceError creates an artifact persistence error.
func NewPersistenceError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindPersistence, Message: message, Underlying: underlying}
}

// NewConfigError creates a configuration validation error.
func NewConfigError(message string) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	cmdErr := &CommandError{Command: cmd, Underlying: err}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsFatalInput checks if the error is a run-fatal input error.
func IsFatalInput(err error) bool {
	return IsKind(err, KindFatalInput)
}
