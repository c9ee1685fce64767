// Package sharedpath parses the path suffixes handled by prefix routes.
package sharedpath

import (
	"net/http"
	"net/url"
	"strings"
)

// SplitPathParts normalizes a slash-delimited route suffix into non-empty path segments.
func SplitPathParts(path string) []string {
	rawParts := strings.Split(path, "/")
	parts := make([]string, 0, len(rawParts))
	for _, part := range rawParts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// Segments splits the request path after prefix into decoded segments.
//
// It works on the escaped path so an encoded "/" inside an identifier stays
// part of one segment. ok is false when the request does not carry prefix or
// a segment is not valid percent-encoding.
func Segments(r *http.Request, prefix string) ([]string, bool) {
	if r == nil || r.URL == nil {
		return nil, false
	}
	escaped := r.URL.EscapedPath()
	if !strings.HasPrefix(escaped, prefix) {
		return nil, false
	}
	parts := SplitPathParts(strings.TrimPrefix(escaped, prefix))
	for i, part := range parts {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		parts[i] = decoded
	}
	return parts, true
}

// RedirectTrailingSlash canonicalizes request paths by stripping trailing "/" characters.
//
// It returns true when a redirect was written. Route handlers should stop further
// processing when true.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}

	originalPath := r.URL.Path
	canonical := strings.TrimRight(originalPath, "/")
	if canonical == "" {
		canonical = "/"
	}
	if canonical == originalPath {
		return false
	}
	if r.URL.RawQuery != "" {
		canonical += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	return true
}
