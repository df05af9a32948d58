package platform

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined output.
// A command that starts but exits non-zero returns its output together with
// an *exec.ExitError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ExitCode extracts the exit status from an error returned by Run.
// ok is false when the command never ran (not found, killed, etc.).
func ExitCode(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// CommandLine renders name and args for log and error messages.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
