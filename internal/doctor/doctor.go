// Package doctor runs environment diagnostics: the external commands a check
// needs, the state of the version cache and how the installed version
// relates to the cached one.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/zoomcheck/zoomcheck/internal/updater"
)

// InstalledVersioner reports the locally installed version.
type InstalledVersioner interface {
	InstalledVersion(ctx context.Context) (string, error)
}

// Options configures a diagnostic run.
type Options struct {
	CachePath string
	Timeout   time.Duration
	// LookPath resolves command names; defaults to exec.LookPath.
	LookPath func(string) (string, error)
	Now      time.Time
	// Prober is optional; without it the version section is skipped.
	Prober InstalledVersioner
}

// Report counts the problems found.
type Report struct {
	Failures int
	Warnings int
}

// OK returns true when nothing failed.
func (r Report) OK() bool { return r.Failures == 0 }

// Run writes one line per check to w.
func Run(ctx context.Context, w io.Writer, opts Options) Report {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var r Report
	fmt.Fprintln(w, "Commands:")
	checkCommand(w, &r, opts.LookPath, "apt", "needed to read the installed version")
	checkCommand(w, &r, opts.LookPath, "notify-send", "needed for desktop notifications (use --no-message without it)")

	fmt.Fprintln(w, "Cache:")
	latest := checkCache(w, &r, opts)

	if opts.Prober != nil {
		fmt.Fprintln(w, "Versions:")
		checkVersions(ctx, w, &r, opts.Prober, latest)
	}
	return r
}

func checkCommand(w io.Writer, r *Report, lookPath func(string) (string, error), name, purpose string) {
	path, err := lookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found on PATH, %s\n", name, purpose)
		r.Failures++
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s (%s)\n", name, path)
}

// checkCache returns the cached published version, or "" when there is none.
func checkCache(w io.Writer, r *Report, opts Options) string {
	dir := filepath.Dir(opts.CachePath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s does not exist yet; it is created on the first fetch\n", dir)
		r.Warnings++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", dir)
	}

	state, err := updater.Stat(opts.CachePath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		r.Failures++
		return ""
	}
	if !state.Exists {
		fmt.Fprintf(w, "  [MISS] %s has not been fetched yet\n", opts.CachePath)
		r.Warnings++
		return ""
	}

	version, err := updater.ReadVersion(opts.CachePath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		fmt.Fprintln(w, "         Run with --force to refetch")
		r.Failures++
		return ""
	}

	age := state.Age(opts.Now).Round(time.Second)
	if state.IsStale(opts.Now, opts.Timeout) {
		fmt.Fprintf(w, "  [WARN] cached version %s is stale (age %s, timeout %s)\n", version, age, opts.Timeout)
		r.Warnings++
		return version
	}
	fmt.Fprintf(w, "  [ OK ] cached version %s (age %s)\n", version, age)
	return version
}

func checkVersions(ctx context.Context, w io.Writer, r *Report, prober InstalledVersioner, latest string) {
	installed, err := prober.InstalledVersion(ctx)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] installed version unknown: %v\n", err)
		r.Warnings++
		return
	}
	if latest == "" {
		fmt.Fprintf(w, "  [ OK ] installed %s (no cached version to compare)\n", installed)
		return
	}
	if installed == latest {
		fmt.Fprintf(w, "  [ OK ] installed %s matches published %s\n", installed, latest)
		return
	}
	fmt.Fprintf(w, "  [WARN] installed %s is %s %s\n", installed, updater.Relate(installed, latest), latest)
	r.Warnings++
}
