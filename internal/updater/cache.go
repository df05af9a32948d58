package updater

import (
	"fmt"
	"os"
	"time"
)

// CacheState describes the version cache file on disk.
type CacheState struct {
	Path      string
	Exists    bool
	FetchedAt time.Time
}

// Stat inspects the cache file at path. A missing file is reported with
// Exists == false; a path that exists but is not a regular file is an error.
func Stat(path string) (*CacheState, error) {
	state := &CacheState{Path: path}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat version cache: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("version cache %s is not a regular file", path)
	}

	state.Exists = true
	state.FetchedAt = info.ModTime()
	return state, nil
}

// Age returns how long ago the cache was fetched, relative to now.
func (c *CacheState) Age(now time.Time) time.Duration {
	if c == nil || !c.Exists {
		return 0
	}
	return now.Sub(c.FetchedAt)
}

// IsStale returns true if the cache is missing or older than maxAge.
func (c *CacheState) IsStale(now time.Time, maxAge time.Duration) bool {
	if c == nil || !c.Exists {
		return true
	}
	return now.Sub(c.FetchedAt) > maxAge
}
