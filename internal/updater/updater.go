package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zoomcheck/zoomcheck/internal/branding"
)

// DownloadError reports a failed fetch of the version descriptor.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("downloading %s: server returned status %d", e.URL, e.StatusCode)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Fetcher resolves the latest published version through the on-disk cache.
type Fetcher struct {
	httpClient *http.Client
	endpoint   string
	now        func() time.Time
	logger     *log.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithEndpoint overrides the descriptor URL.
func WithEndpoint(url string) Option {
	return func(f *Fetcher) {
		f.endpoint = url
	}
}

// WithClock sets the time source used for staleness checks and fetched-at stamps.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a Fetcher for the vendor endpoint.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		endpoint:   branding.EndpointURL(),
		now:        time.Now,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LatestVersion returns the published version, downloading the descriptor
// into cachePath first when force is set or the cache is missing or older
// than maxAge. Otherwise the existing cache is used as is.
func (f *Fetcher) LatestVersion(ctx context.Context, cachePath string, force bool, maxAge time.Duration) (string, error) {
	state, err := Stat(cachePath)
	if err != nil {
		return "", err
	}

	now := f.now()
	switch {
	case force:
		f.logger.Debug("refreshing version cache", "reason", "forced", "path", cachePath)
	case !state.Exists:
		f.logger.Debug("refreshing version cache", "reason", "missing", "path", cachePath)
	case state.IsStale(now, maxAge):
		f.logger.Debug("refreshing version cache", "reason", "stale", "age", state.Age(now).Round(time.Second), "timeout", maxAge)
	default:
		f.logger.Debug("using cached version descriptor", "path", cachePath, "age", state.Age(now).Round(time.Second))
	}

	if force || state.IsStale(now, maxAge) {
		if err := f.Refresh(ctx, cachePath); err != nil {
			return "", err
		}
	}

	return ReadVersion(cachePath)
}

// Refresh replaces the cache file with a fresh copy of the descriptor and
// stamps it with the fetcher's clock. A failed download leaves no cache file.
func (f *Fetcher) Refresh(ctx context.Context, cachePath string) error {
	if _, err := Stat(cachePath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.Remove(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old version cache: %w", err)
	}

	if err := f.download(ctx, cachePath); err != nil {
		os.Remove(cachePath)
		return err
	}

	fetchedAt := f.now()
	if err := os.Chtimes(cachePath, fetchedAt, fetchedAt); err != nil {
		return fmt.Errorf("stamping version cache: %w", err)
	}
	return nil
}

// download writes the endpoint's response body to dest.
func (f *Fetcher) download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return &DownloadError{URL: f.endpoint, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug("fetched version descriptor", "url", f.endpoint, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: f.endpoint, StatusCode: resp.StatusCode}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating version cache: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return &DownloadError{URL: f.endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}
