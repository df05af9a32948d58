package updater

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStat_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom_version.json")

	state, err := Stat(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Exists {
		t.Error("expected Exists = false for missing file")
	}
	if !state.IsStale(time.Now(), testMaxAge) {
		t.Error("missing cache should be stale")
	}
}

func TestStat_Directory(t *testing.T) {
	if _, err := Stat(t.TempDir()); err == nil {
		t.Error("expected error for a directory cache path")
	}
}

func TestStat_ReadsFetchedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom_version.json")
	os.WriteFile(path, []byte(`{}`), 0644)

	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, fetchedAt, fetchedAt); err != nil {
		t.Fatal(err)
	}

	state, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !state.Exists {
		t.Fatal("expected Exists = true")
	}
	if !state.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", state.FetchedAt, fetchedAt)
	}
	if age := state.Age(fetchedAt.Add(time.Hour)); age != time.Hour {
		t.Errorf("Age = %v, want 1h", age)
	}
}

func TestIsStale(t *testing.T) {
	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 24 * time.Hour

	tests := []struct {
		name     string
		state    *CacheState
		now      time.Time
		expected bool
	}{
		{
			"nil state is stale",
			nil,
			fetchedAt,
			true,
		},
		{
			"missing file is stale",
			&CacheState{},
			fetchedAt,
			true,
		},
		{
			"fresh cache",
			&CacheState{Exists: true, FetchedAt: fetchedAt},
			fetchedAt.Add(time.Hour),
			false,
		},
		{
			"one second before timeout",
			&CacheState{Exists: true, FetchedAt: fetchedAt},
			fetchedAt.Add(maxAge - time.Second),
			false,
		},
		{
			"exactly at timeout",
			&CacheState{Exists: true, FetchedAt: fetchedAt},
			fetchedAt.Add(maxAge),
			false,
		},
		{
			"one second past timeout",
			&CacheState{Exists: true, FetchedAt: fetchedAt},
			fetchedAt.Add(maxAge + time.Second),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.state.IsStale(tt.now, maxAge)
			if result != tt.expected {
				t.Errorf("IsStale = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsStale_SaturatedMaxAge(t *testing.T) {
	state := &CacheState{Exists: true, FetchedAt: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	if state.IsStale(time.Now(), time.Duration(math.MaxInt64)) {
		t.Error("a cache is never stale under the largest timeout")
	}
}
