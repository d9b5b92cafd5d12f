package mw

import (
	"net/http"
	"strings"

	"github.com/outlink-dev/outlink/internal/logger"
)

// EnforceHost rejects requests whose Host header matches none of the
// allowed hosts. Patterns may be exact ("out.example.com") or wildcard
// ("*.example.com"). Matching is case-insensitive. An empty list is a
// passthrough.
//
// This guards the redirect endpoints against Host-header games: the
// landing-page URL built from the request must never point at a host
// the operator does not own.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost: empty allowedHosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(strings.TrimSpace(h)))
	}
	log.Debugf("EnforceHost: initialized with hosts=%v", patterns)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debugf("EnforceHost: Host %s rejected", host)
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

// matchHost checks host against an exact or wildcard pattern.
func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	// "*.example.com" matches "sub.example.com" but not "example.com".
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return false
}
