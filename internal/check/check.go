package check

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zoomcheck/zoomcheck/internal/branding"
	"github.com/zoomcheck/zoomcheck/internal/notify"
	"github.com/zoomcheck/zoomcheck/internal/updater"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InstalledVersioner reports the locally installed version.
type InstalledVersioner interface {
	InstalledVersion(ctx context.Context) (string, error)
}

// LatestVersioner reports the latest published version through a cache.
type LatestVersioner interface {
	LatestVersion(ctx context.Context, cachePath string, force bool, maxAge time.Duration) (string, error)
}

// Options are the per-run settings of a check.
type Options struct {
	Force      bool
	Verbose    bool
	NoMessage  bool
	DirectLink bool
	CachePath  string
	Timeout    time.Duration
}

// Status is the outcome of a comparison.
type Status int

const (
	StatusUpToDate Status = iota
	StatusUpdateAvailable
)

func (s Status) String() string {
	if s == StatusUpdateAvailable {
		return "update available"
	}
	return "up to date"
}

// Result records what a run found and did.
type Result struct {
	Installed string
	Latest    string
	Status    Status
	// Notified is true when a desktop notification was delivered.
	Notified bool
	// URL is the link offered in the update notification, if any.
	URL string
}

// Checker wires the prober, fetcher and notifier together.
type Checker struct {
	prober   InstalledVersioner
	fetcher  LatestVersioner
	notifier notify.Notifier
	out      io.Writer
	logger   *log.Logger
	name     string
}

// Option configures a Checker.
type Option func(*Checker)

// WithOutput sets where verbose diagnostics are printed.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// New creates a Checker. The display name is the package name in title case.
func New(prober InstalledVersioner, fetcher LatestVersioner, notifier notify.Notifier, opts ...Option) *Checker {
	c := &Checker{
		prober:   prober,
		fetcher:  fetcher,
		notifier: notifier,
		out:      io.Discard,
		logger:   log.Default(),
		name:     DisplayName(branding.PackageName()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DisplayName renders a package name for user-facing messages ("zoom" -> "Zoom").
func DisplayName(pkg string) string {
	return cases.Title(language.English).String(pkg)
}

// UpdateURL returns the link offered for latest: the versioned installer
// when direct is set, the download page otherwise.
func UpdateURL(latest string, direct bool) string {
	if direct {
		return branding.DirectLink(latest)
	}
	return branding.DownloadPageURL()
}

// Run performs one check. Errors from the prober or fetcher abort the run.
// A failed notification is logged and reflected in Result.Notified.
func (c *Checker) Run(ctx context.Context, opts Options) (*Result, error) {
	installed, err := c.prober.InstalledVersion(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintln(c.out, "Installed:", installed)
	}

	latest, err := c.fetcher.LatestVersion(ctx, opts.CachePath, opts.Force, opts.Timeout)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintln(c.out, "Latest:   ", latest)
	}

	res := &Result{Installed: installed, Latest: latest}

	if installed == latest {
		res.Status = StatusUpToDate
		if opts.Verbose {
			fmt.Fprintf(c.out, "%s is up-to-date\n", c.name)
		}
		if opts.NoMessage {
			return res, nil
		}
		res.Notified = c.send(ctx, notify.Notification{
			Urgency: notify.UrgencyLow,
			Summary: fmt.Sprintf("%s is up-to-date (%s)", c.name, installed),
		})
		return res, nil
	}

	res.Status = StatusUpdateAvailable
	if opts.Verbose {
		fmt.Fprintf(c.out, "%s needs an update\n", c.name)
	}
	c.logger.Debug("versions differ", "installed", installed, "latest", latest, "installed_is", updater.Relate(installed, latest))
	if opts.NoMessage {
		return res, nil
	}

	res.URL = UpdateURL(latest, opts.DirectLink)
	res.Notified = c.send(ctx, notify.Notification{
		Urgency: notify.UrgencyCritical,
		Summary: fmt.Sprintf("%s update available (%s -> %s)", c.name, installed, latest),
		Body:    res.URL,
	})
	return res, nil
}

func (c *Checker) send(ctx context.Context, n notify.Notification) bool {
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("could not show notification", "err", err)
		return false
	}
	return true
}
