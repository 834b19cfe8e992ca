package plug

import (
	"strings"

	"golang.org/x/mod/semver"
)

// versionSatisfied reports whether the running host version meets the
// extension's declared minimum. An empty minimum means no constraint. An
// unparseable running version never satisfies a declared minimum.
func versionSatisfied(running, minimum string) bool {
	if minimum == "" {
		return true
	}
	running = canonical(running)
	if !semver.IsValid(running) {
		return false
	}
	return semver.Compare(running, canonical(minimum)) >= 0
}

// canonical normalizes a bare version string into the v-prefixed form the
// semver package expects.
func canonical(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
