package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure is used for every fatal failure.
	ExitFailure = 1
	// ExitUpdateAvailable signals a pending update when notifications are suppressed.
	ExitUpdateAvailable = 2
	// ExitProbeParse signals that the installed version could not be read
	// from the package manager output (-1 as an unsigned exit status).
	ExitProbeParse = 255
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit status.
// The second result reports whether the error still needs to be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return ExitOK, false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, false
	}
	return ExitFailure, true
}
