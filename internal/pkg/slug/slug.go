// Package slug derives URL-safe identifiers from human-readable names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback is returned when canonicalization strips a name down to nothing.
const Fallback = "project"

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Make canonicalizes a name into a slug: lower-cased, runs of characters
// outside [a-z0-9-] collapsed to a single hyphen, repeated hyphens collapsed,
// edges trimmed. Names with no usable characters map to Fallback.
//
// This is the single canonicalization routine shared by project slugs and
// generated package-manifest identifiers.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Unique returns the first candidate slug for name that taken reports as
// free, probing base, base-1, base-2, ... in order, together with the
// suffix index it stopped at (0 for the bare base).
//
// The taken callback is only a pre-check; concurrent writers can still race
// to the same slug, so callers must treat a unique-constraint violation at
// insert time as a signal to retry with the next suffix. The returned index
// lets them build that next candidate from the base rather than by parsing
// the slug, which would misread a base that itself ends in digits
// ("app-2024").
func Unique(name string, taken func(string) bool) (string, int) {
	base := Make(name)
	if !taken(base) {
		return base, 0
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate, i
		}
	}
}
