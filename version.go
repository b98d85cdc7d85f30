// Package lineguard is a terminal code editor with pluggable line features:
// protected (read-only) line regions, line highlighting, click-to-select and
// content height reporting.
//
// Hosts start from the codeeditor package; the features live in feature.
package lineguard

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the embedded release version (SemVer, no leading v).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// ResolveVersion returns the version to report for a build. A linker-set
// version wins when it is SemVer (a leading v is dropped); anything else
// falls back to the embedded one.
func ResolveVersion(linked string) string {
	v := strings.TrimPrefix(strings.TrimSpace(linked), "v")
	if IsSemver(v) {
		return v
	}
	return Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
