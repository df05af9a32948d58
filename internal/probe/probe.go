package probe

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/zoomcheck/zoomcheck/internal/platform"
)

// versionPattern matches a line of the form "Version: 5.16.10.668".
var versionPattern = regexp.MustCompile(`(?m)Version: ([\d.]+)\r?$`)

// CommandError reports that the package query command exited non-zero.
type CommandError struct {
	Command string
	Code    int
	Output  string
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Code, out)
}

// ParseError reports that the command output carried no version line.
type ParseError struct {
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse installed version from:\n%s", e.Output)
}

// Prober queries the package manager for an installed version.
type Prober struct {
	runner  platform.Runner
	command string
	args    []string
	logger  *log.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithRunner sets the command runner (useful for testing).
func WithRunner(r platform.Runner) Option {
	return func(p *Prober) {
		p.runner = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

// New creates a Prober for packageName backed by `apt show`.
func New(packageName string, opts ...Option) *Prober {
	p := &Prober{
		runner:  platform.ExecRunner{},
		command: "apt",
		args:    []string{"show", packageName},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InstalledVersion runs the package query and returns the matched version.
// A non-zero exit yields *CommandError; output without a version line yields
// *ParseError.
func (p *Prober) InstalledVersion(ctx context.Context) (string, error) {
	cmdline := platform.CommandLine(p.command, p.args...)
	p.logger.Debug("querying installed version", "cmd", cmdline)

	out, err := p.runner.Run(ctx, p.command, p.args...)
	if err != nil {
		if code, ok := platform.ExitCode(err); ok {
			p.logger.Debug("package query failed", "cmd", cmdline, "status", code, "output", string(out))
			return "", &CommandError{Command: cmdline, Code: code, Output: string(out)}
		}
		return "", fmt.Errorf("running %s: %w", cmdline, err)
	}

	version, ok := ParseVersion(string(out))
	if !ok {
		return "", &ParseError{Output: string(out)}
	}
	return version, nil
}

// ParseVersion extracts the first "Version: X.Y.Z" value from package
// manager output.
func ParseVersion(output string) (string, bool) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}
