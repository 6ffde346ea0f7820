package resolver

import (
	"net/url"
	"strings"
)

// Scheme prefixes route addresses that are not tied to a particular mirror.
const Scheme = "rsshub://"

// DefaultMirrors are the route mirror base URLs, in preference order.
var DefaultMirrors = []string{
	"https://rsshub.app",
	"https://rsshub.rssforever.com",
	"https://rsshub.uneasy.win",
}

type Kind int

const (
	// KindDirect addresses are fetched as they are.
	KindDirect Kind = iota
	// KindRoute addresses are paths served by any of the mirrors.
	KindRoute
)

func (k Kind) String() string {
	if k == KindRoute {
		return "route"
	}
	return "direct"
}

// Resolver turns a configured feed address into the ordered list of document URLs to try.
// It does no I/O and is safe for concurrent use.
type Resolver struct {
	mirrors     []string
	mirrorHosts map[string]struct{}
}

// New creates a Resolver. Fewer than two usable mirrors falls back to DefaultMirrors.
func New(mirrors []string) *Resolver {
	cleaned := make([]string, 0, len(mirrors))
	for _, m := range mirrors {
		m = strings.TrimRight(strings.TrimSpace(m), "/")
		if m != "" {
			cleaned = append(cleaned, m)
		}
	}
	if len(cleaned) < 2 {
		cleaned = append([]string(nil), DefaultMirrors...)
	}

	hosts := make(map[string]struct{}, len(cleaned))
	for _, m := range cleaned {
		if u, err := url.Parse(m); err == nil && u.Host != "" {
			hosts[strings.ToLower(u.Host)] = struct{}{}
		}
	}
	return &Resolver{mirrors: cleaned, mirrorHosts: hosts}
}

// Mirrors returns the mirror base URLs in preference order.
func (r *Resolver) Mirrors() []string {
	return append([]string(nil), r.mirrors...)
}

// Classify reports whether address is fetched directly or routed through the mirrors.
func (r *Resolver) Classify(address string) Kind {
	address = strings.TrimSpace(address)
	if hasScheme(address) {
		return KindRoute
	}
	if u, ok := absoluteHTTP(address); ok {
		if r.isMirror(u.Host) {
			return KindRoute
		}
		return KindDirect
	}
	if strings.HasPrefix(address, "/") {
		return KindRoute
	}
	if address == "" || strings.Contains(address, "://") || looksLikeHost(address) {
		return KindDirect
	}
	return KindRoute
}

// Resolve returns the candidate URLs for address, most preferred first. It never fails:
// an address it cannot make sense of comes back as its only candidate.
func (r *Resolver) Resolve(address string) []string {
	address = strings.TrimSpace(address)
	if r.Classify(address) == KindDirect {
		if address != "" && !strings.Contains(address, "://") && looksLikeHost(address) {
			return []string{"https://" + address}
		}
		return []string{address}
	}

	path, query := r.route(address)
	candidates := make([]string, 0, len(r.mirrors)+1)
	candidates = append(candidates, r.mirrors[0]+path+query)
	if path != "/" && !hasFeedExtension(path) {
		candidates = append(candidates, r.mirrors[0]+path+".rss"+query)
	}
	for _, m := range r.mirrors[1:] {
		candidates = append(candidates, m+path+query)
	}
	return dedupe(candidates)
}

// route extracts the mirror-relative path and the query (with its leading "?") of a route address.
func (r *Resolver) route(address string) (string, string) {
	var raw string
	switch {
	case hasScheme(address):
		raw = address[len(Scheme):]
	default:
		if u, ok := absoluteHTTP(address); ok {
			raw = u.EscapedPath()
			if u.RawQuery != "" {
				raw += "?" + u.RawQuery
			}
		} else {
			raw = address
		}
	}

	path, query, found := strings.Cut(raw, "?")
	path = "/" + strings.Trim(path, "/")
	if found && query != "" {
		return path, "?" + query
	}
	return path, ""
}

func (r *Resolver) isMirror(host string) bool {
	_, ok := r.mirrorHosts[strings.ToLower(host)]
	return ok
}

func hasScheme(address string) bool {
	return len(address) >= len(Scheme) && strings.EqualFold(address[:len(Scheme)], Scheme)
}

func absoluteHTTP(address string) (*url.URL, bool) {
	u, err := url.Parse(address)
	if err != nil || u.Host == "" {
		return nil, false
	}
	scheme := strings.ToLower(u.Scheme)
	return u, scheme == "http" || scheme == "https"
}

// looksLikeHost reports whether the first path segment of a scheme-less address is a host name.
func looksLikeHost(address string) bool {
	first, _, _ := strings.Cut(address, "/")
	return strings.Contains(first, ".") || strings.Contains(first, ":")
}

func hasFeedExtension(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".rss") || strings.HasSuffix(lower, ".xml") || strings.HasSuffix(lower, ".atom")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
