// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. They pin the tool to a single package and a single
// vendor endpoint.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	Description        string `yaml:"description"`
	ConfigDir          string `yaml:"config_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	PackageName        string `yaml:"package_name"`
	EndpointURL        string `yaml:"endpoint_url"`
	DownloadPageURL    string `yaml:"download_page_url"`
	DirectLinkTemplate string `yaml:"direct_link_template"`
	CacheFileName      string `yaml:"cache_file_name"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "zoomcheck",
			Description:        "Check whether the installed Zoom client is up to date",
			ConfigDir:          "zoomcheck",
			EnvPrefix:          "ZOOMCHECK",
			PackageName:        "zoom",
			EndpointURL:        "https://zoom.us/rest/download?os=linux",
			DownloadPageURL:    "https://zoom.us/download",
			DirectLinkTemplate: "https://zoom.us/client/{version}/zoom_amd64.deb",
			CacheFileName:      "zoom_version.json",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "zoomcheck").
func CLIName() string { load(); return defaults.CLIName }

// Description returns the short tool description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the directory name under the user config dir (e.g., "zoomcheck").
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix (e.g., "ZOOMCHECK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PackageName returns the name of the watched package as the package manager knows it.
func PackageName() string { load(); return defaults.PackageName }

// EndpointURL returns the vendor endpoint that publishes the latest version descriptor.
func EndpointURL() string { load(); return defaults.EndpointURL }

// DownloadPageURL returns the generic download landing page.
func DownloadPageURL() string { load(); return defaults.DownloadPageURL }

// DirectLink returns the installer URL for a specific version.
func DirectLink(version string) string {
	load()
	return strings.ReplaceAll(defaults.DirectLinkTemplate, "{version}", version)
}

// CacheFileName returns the base name of the version cache file.
func CacheFileName() string { load(); return defaults.CacheFileName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("timeout") → "ZOOMCHECK_TIMEOUT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(suffix, "-", "_"))
}
