// Package matching implements the prefix rule that binds companion audio
// and subtitle files to a video file.
package matching

import "strings"

// Result describes the outcome of a prefix comparison between two
// extension-stripped file names.
type Result struct {
	// OK reports whether one name is a prefix of the other. Equal names
	// match with an empty differential.
	OK bool
	// Longer is the longer of the two names when OK, otherwise empty.
	Longer string
	// Diff is the part of the longer name beyond the shorter when OK.
	Diff string
	// CommonPrefix is the longest common leading substring, populated
	// only when the match fails. Used for diagnostics.
	CommonPrefix string
}

// Match compares two extension-stripped base names.
func Match(a, b string) Result {
	if len(a) > len(b) {
		if strings.HasPrefix(a, b) {
			return Result{OK: true, Longer: a, Diff: a[len(b):]}
		}
	} else if strings.HasPrefix(b, a) {
		return Result{OK: true, Longer: b, Diff: b[len(a):]}
	}

	n := min(len(a), len(b))
	common := 0
	for common < n && a[common] == b[common] {
		common++
	}
	return Result{CommonPrefix: a[:common]}
}
