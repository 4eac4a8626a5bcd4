// Package version reports the build version of the binary.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X github.com/gohub-app/gohub/internal/shared/version.Version=1.2.3".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Current returns the normalized build version, or the raw value for
// non-semver builds such as "dev".
func Current() string {
	if v := Normalize(Version); semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return Version
}

// IsRelease reports whether the binary was built from a release tag.
func IsRelease() bool {
	v := Normalize(Version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// String is the one-line description printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Current(), Commit, BuildTime)
}
