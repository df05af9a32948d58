package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeProber struct {
	version string
	err     error
}

func (p fakeProber) InstalledVersion(context.Context) (string, error) {
	return p.version, p.err
}

// freshCache writes a descriptor for version stamped at now.
func freshCache(t *testing.T, version string, now time.Time) string {
	t.Helper()
	cachePath := filepath.Join(t.TempDir(), "zoom_version.json")
	if err := os.WriteFile(cachePath, []byte(`{"result":{"downloadVO":{"zoom":{"version":"`+version+`"}}}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(cachePath, now, now); err != nil {
		t.Fatal(err)
	}
	return cachePath
}

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestRun_AllGood(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "zoom_version.json")
	os.WriteFile(cachePath, []byte(`{"result":{"downloadVO":{"zoom":{"version":"5.17.0"}}}}`), 0644)
	now := time.Now()
	os.Chtimes(cachePath, now, now)

	var buf bytes.Buffer
	r := Run(context.Background(), &buf, Options{
		CachePath: cachePath,
		Timeout:   time.Hour,
		LookPath:  lookPathFor("apt", "notify-send"),
		Now:       now.Add(time.Minute),
	})

	if !r.OK() || r.Warnings != 0 {
		t.Errorf("expected clean report, got %+v:\n%s", r, buf.String())
	}
	if !strings.Contains(buf.String(), "[ OK ] cached version 5.17.0 (age 1m0s)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRun_MissingCommand(t *testing.T) {
	var buf bytes.Buffer
	r := Run(context.Background(), &buf, Options{
		CachePath: filepath.Join(t.TempDir(), "zoom_version.json"),
		Timeout:   time.Hour,
		LookPath:  lookPathFor("apt"),
	})

	if r.OK() {
		t.Error("missing notify-send should fail")
	}
	if !strings.Contains(buf.String(), "[MISS] notify-send not found on PATH") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "has not been fetched yet") {
		t.Errorf("missing cache should be reported:\n%s", buf.String())
	}
}

func TestRun_StaleAndCorruptCache(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "zoom_version.json")
	old := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	os.WriteFile(cachePath, []byte(`{"result":{"downloadVO":{"zoom":{"version":"5.17.0"}}}}`), 0644)
	os.Chtimes(cachePath, old, old)

	var buf bytes.Buffer
	r := Run(context.Background(), &buf, Options{CachePath: cachePath, Timeout: time.Hour, LookPath: lookPathFor("apt", "notify-send"), Now: old.Add(2 * time.Hour)})
	if !r.OK() || r.Warnings != 1 {
		t.Errorf("stale cache should warn only, got %+v", r)
	}

	os.WriteFile(cachePath, []byte(`{"result":{}}`), 0644)
	buf.Reset()
	r = Run(context.Background(), &buf, Options{CachePath: cachePath, Timeout: time.Hour, LookPath: lookPathFor("apt", "notify-send")})
	if r.OK() {
		t.Errorf("corrupt cache should fail:\n%s", buf.String())
	}
}

func TestRun_DirectoryCachePath(t *testing.T) {
	var buf bytes.Buffer
	r := Run(context.Background(), &buf, Options{CachePath: t.TempDir(), Timeout: time.Hour, LookPath: lookPathFor("apt", "notify-send")})
	if r.OK() {
		t.Errorf("a directory at the cache path should fail:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "not a regular file") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRun_Versions(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		prober   fakeProber
		want     string
		warnings int
	}{
		{"matches", fakeProber{version: "5.17.0"}, "[ OK ] installed 5.17.0 matches published 5.17.0", 0},
		{"older", fakeProber{version: "5.16.10"}, "[WARN] installed 5.16.10 is older than published 5.17.0", 1},
		{"newer", fakeProber{version: "5.18.1"}, "[WARN] installed 5.18.1 is newer than published 5.17.0", 1},
		{"four-part build", fakeProber{version: "5.16.10.668"}, "[WARN] installed 5.16.10.668 is not comparable to published 5.17.0", 1},
		{"probe failure", fakeProber{err: errors.New("apt show zoom exited with status 100")}, "[WARN] installed version unknown: apt show zoom exited with status 100", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := Run(context.Background(), &buf, Options{
				CachePath: freshCache(t, "5.17.0", now),
				Timeout:   time.Hour,
				LookPath:  lookPathFor("apt", "notify-send"),
				Now:       now,
				Prober:    tt.prober,
			})
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
			if r.Warnings != tt.warnings {
				t.Errorf("Warnings = %d, want %d", r.Warnings, tt.warnings)
			}
		})
	}
}
