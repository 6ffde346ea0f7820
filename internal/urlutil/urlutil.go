package urlutil

import (
	"net/url"
	"strings"
)

// Canonical returns the stored form of an article URL: trimmed, fragment removed,
// scheme and host lowercased. Unparseable input only loses its fragment.
func Canonical(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		if idx := strings.Index(trimmed, "#"); idx >= 0 {
			return trimmed[:idx]
		}
		return trimmed
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}

// IsAbsoluteHTTP reports whether raw is an http(s) URL with a host.
func IsAbsoluteHTTP(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}
