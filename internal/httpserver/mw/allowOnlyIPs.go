package mw

import (
	"net/http"

	"github.com/outlink-dev/outlink/internal/logger"
	"github.com/outlink-dev/outlink/internal/utils"
)

// AllowOnlyCIDRS restricts access to specific IPs/CIDRs. An empty list
// is a passthrough: the public deployment serves everyone, a private
// one pins the ranges of its edge.
// trustProxy should be true only behind a trusted reverse proxy or
// tunnel, otherwise the client controls the headers the IP comes from.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: empty matcher, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("AllowOnlyCIDRS: initialized with %d rules, trustProxy=%v", len(allowed), trustProxy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debugf("AllowOnlyCIDRS: IP %s rejected", ip)
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
