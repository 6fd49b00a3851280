// Package model defines the canonical records the client layer hands to callers.
package model

import "strings"

// ResolveImage turns a media path from an API payload into an absolute URL.
// Paths starting with http://, https:// or data: pass through unchanged;
// anything else has its leading separators stripped and is joined to origin.
// An empty path has no image and stays empty.
func ResolveImage(origin, path string) string {
	if path == "" {
		return ""
	}
	if hasScheme(path) {
		return path
	}
	return origin + strings.TrimLeft(path, `/\`)
}

// ResolveImages applies ResolveImage to every non-empty path.
// The result is never nil.
func ResolveImages(origin string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if resolved := ResolveImage(origin, p); resolved != "" {
			out = append(out, resolved)
		}
	}
	return out
}

// hasScheme is a literal, case-sensitive prefix check.
func hasScheme(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "data:")
}
