// Package apiurl builds request URLs for the record service API.
//
// The service exposes every endpoint under a single /api prefix. Callers
// configure a base URL (scheme + host, optionally with a path) and address
// endpoints by their path relative to that prefix; fully absolute URLs are
// passed through untouched so custom requests can escape the prefix rule.
package apiurl

import (
	"regexp"
	"strings"
)

const prefix = "/api"

// schemePattern matches an absolute URL per RFC 3986 (scheme followed by "://").
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// NormalizeBase canonicalizes a base URL by stripping trailing slashes.
// Idempotent; safe to apply to an already-normalized base.
func NormalizeBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// Compose joins a base URL and an endpoint path into a full request URL.
//
// An endpoint that is already an absolute URL is returned unchanged. A
// relative endpoint gets exactly one leading slash and the /api prefix unless
// the path already carries it. The result never contains a double slash.
func Compose(base, endpoint string) string {
	if schemePattern.MatchString(endpoint) {
		return endpoint
	}

	path := "/" + strings.TrimLeft(endpoint, "/")
	if path != prefix && !strings.HasPrefix(path, prefix+"/") {
		path = prefix + path
	}

	return NormalizeBase(base) + path
}
