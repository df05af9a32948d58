package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/zoomcheck/zoomcheck/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Option keys, shared by flags, environment variables and the config file.
const (
	KeyForce      = "force"
	KeyVerbose    = "verbose"
	KeyNoMessage  = "no-message"
	KeyDirectLink = "direct-link"
	KeyCachePath  = "cache-path"
	KeyTimeout    = "timeout"
)

// DefaultTimeout is the default cache staleness threshold in seconds.
const DefaultTimeout = 24 * 60 * 60.0

var boolKeys = []string{KeyForce, KeyVerbose, KeyNoMessage, KeyDirectLink}

// Keys lists every recognised option key.
func Keys() []string {
	return append(slices.Clone(boolKeys), KeyCachePath, KeyTimeout)
}

// Settings are the resolved options for one run.
type Settings struct {
	Force      bool
	Verbose    bool
	NoMessage  bool
	DirectLink bool
	CachePath  string
	Timeout    time.Duration
}

// Dir returns the path to the config directory (~/.config/zoomcheck/).
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", branding.ConfigDir())
	}
	return filepath.Join(dir, branding.ConfigDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefaultCachePath returns ~/.cache/zoom_version.json.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", branding.CacheFileName())
	}
	return filepath.Join(home, ".cache", branding.CacheFileName())
}

// New returns a Viper instance with defaults and environment bindings for
// every option, reading configFile if it exists.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for _, k := range boolKeys {
		v.SetDefault(k, false)
	}
	v.SetDefault(KeyCachePath, DefaultCachePath())
	v.SetDefault(KeyTimeout, DefaultTimeout)

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readFile(v, configFile); err != nil {
		return nil, err
	}
	return v, nil
}

// readFile loads configFile into v. A missing file is not an error.
func readFile(v *viper.Viper, configFile string) error {
	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config file %s: %w", configFile, err)
}

// Resolve converts the layered values in v into Settings.
func Resolve(v *viper.Viper) (*Settings, error) {
	cachePath, err := ExpandHome(v.GetString(KeyCachePath))
	if err != nil {
		return nil, err
	}
	if cachePath == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyCachePath)
	}

	secs, err := parseSeconds(v.GetString(KeyTimeout))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Force:      v.GetBool(KeyForce),
		Verbose:    v.GetBool(KeyVerbose),
		NoMessage:  v.GetBool(KeyNoMessage),
		DirectLink: v.GetBool(KeyDirectLink),
		CachePath:  cachePath,
		Timeout:    secondsToDuration(secs),
	}, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Get returns a config value by key as a string.
func Get(v *viper.Viper, key string) (string, error) {
	if !slices.Contains(Keys(), key) {
		return "", fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return v.GetString(key), nil
}

// Set validates value for key and writes it to configFile. Only values
// already in the file are carried over; defaults and environment overrides
// are never persisted.
func Set(configFile, key, value string) error {
	v := viper.New()
	if err := readFile(v, configFile); err != nil {
		return err
	}

	switch {
	case slices.Contains(boolKeys, key):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		v.Set(key, b)
	case key == KeyTimeout:
		secs, err := parseSeconds(value)
		if err != nil {
			return err
		}
		v.Set(key, secs)
	case key == KeyCachePath:
		if value == "" {
			return fmt.Errorf("%s must not be empty", KeyCachePath)
		}
		v.Set(key, value)
	default:
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func parseSeconds(s string) (float64, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number of seconds, got %q", KeyTimeout, s)
	}
	if math.IsNaN(secs) {
		return 0, fmt.Errorf("%s must be a number of seconds, got %q", KeyTimeout, s)
	}
	if secs < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %v", KeyTimeout, secs)
	}
	return secs, nil
}

// secondsToDuration converts non-negative seconds, saturating at the largest
// Duration so that huge values and +Inf mean "never stale".
func secondsToDuration(secs float64) time.Duration {
	if secs*float64(time.Second) >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(secs * float64(time.Second))
}
