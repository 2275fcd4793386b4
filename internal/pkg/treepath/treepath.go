// Package treepath implements path arithmetic for the slash-separated,
// absolute paths used by project file trees.
package treepath

import (
	"strings"
)

// Normalize cleans a user-supplied path into canonical form: leading slash,
// single separators, no trailing slash (except the root itself).
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	segs := splitSegments(path)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// ParentPath returns the parent folder path of an absolute path, or nil for
// top-level entries ("/src/App.jsx" -> "/src", "/README.md" -> nil).
func ParentPath(path string) *string {
	segs := splitSegments(path)
	if len(segs) <= 1 {
		return nil
	}
	p := "/" + strings.Join(segs[:len(segs)-1], "/")
	return &p
}

// Base returns the final segment of a path ("/src/App.jsx" -> "App.jsx").
func Base(path string) string {
	segs := splitSegments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// IsDescendant reports whether candidate lives strictly inside the folder at
// folderPath. The folder path is matched with a trailing separator so that
// "/src2/main.go" is never treated as a descendant of "/src".
func IsDescendant(candidate, folderPath string) bool {
	prefix := strings.TrimSuffix(folderPath, "/") + "/"
	return strings.HasPrefix(candidate, prefix)
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		// "." segments would otherwise produce parent paths that can
		// never name a folder ("/docs/." for "/docs/./a.md").
		if p != "" && p != "." {
			segs = append(segs, p)
		}
	}
	return segs
}
