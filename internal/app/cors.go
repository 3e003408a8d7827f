package app

import (
	"net/url"
	"strings"
)

// originHost strips the scheme from an Origin header value, leaving
// "host[:port]". Values that don't parse as URLs pass through unchanged so
// bare-host patterns still match them.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// originMatches checks a host against a configured origin pattern. Besides
// exact equality, "*.example.com" matches any subdomain and "localhost:*"
// matches any port on that host.
func originMatches(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
