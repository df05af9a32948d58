package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Relation describes how an installed version relates to the published one.
// It is informational only; update decisions compare the raw strings.
type Relation int

const (
	RelationUnknown Relation = iota
	RelationOlder
	RelationEqual
	RelationNewer
)

func (r Relation) String() string {
	switch r {
	case RelationOlder:
		return "older than published"
	case RelationEqual:
		return "equal to published"
	case RelationNewer:
		return "newer than published"
	default:
		return "not comparable to published"
	}
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(current, latest string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return 0, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

// Relate classifies installed against latest. Versions that semver cannot
// parse (Zoom's four-part builds, for one) are RelationUnknown.
func Relate(installed, latest string) Relation {
	cmp, err := CompareVersions(installed, latest)
	if err != nil {
		return RelationUnknown
	}
	switch cmp {
	case -1:
		return RelationOlder
	case 1:
		return RelationNewer
	default:
		return RelationEqual
	}
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
