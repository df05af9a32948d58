package branding

import "testing"

func TestDirectLink(t *testing.T) {
	got := DirectLink("5.17.0")
	want := "https://zoom.us/client/5.17.0/zoom_amd64.deb"
	if got != want {
		t.Errorf("DirectLink = %q, want %q", got, want)
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"timeout", "ZOOMCHECK_TIMEOUT"},
		{"cache-path", "ZOOMCHECK_CACHE_PATH"},
		{"NO_MESSAGE", "ZOOMCHECK_NO_MESSAGE"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}

func TestEmbeddedValues(t *testing.T) {
	if PackageName() != "zoom" {
		t.Errorf("PackageName = %q, want zoom", PackageName())
	}
	if EndpointURL() != "https://zoom.us/rest/download?os=linux" {
		t.Errorf("EndpointURL = %q", EndpointURL())
	}
	if DownloadPageURL() != "https://zoom.us/download" {
		t.Errorf("DownloadPageURL = %q", DownloadPageURL())
	}
	if CacheFileName() != "zoom_version.json" {
		t.Errorf("CacheFileName = %q", CacheFileName())
	}
}
