package codec

import (
	"net/url"
	"strings"

	"github.com/outlink-dev/outlink/internal/catalog"
)

// Store-front destinations every deployment must be able to reach,
// independent of which providers the catalog registers.
var (
	storeDomains = []string{
		"apps.apple.com",
		"itunes.apple.com",
		"play.google.com",
		"a.app.qq.com",
	}
	storeSchemes = []string{
		"itms-apps",
		"market",
		"intent",
		"tmast",
	}
)

// Allowlist decides whether an outbound URL may ever be acted on.
// For http(s) URLs it is a pure domain allow-list (host suffix match
// against registered platform domains, regardless of path). Non-http
// URLs are admitted only when their scheme was registered by a catalog
// provider or is a known store scheme.
type Allowlist struct {
	domains map[string]bool
	schemes map[string]bool
}

// NewAllowlist builds the allow-list from a catalog registry.
func NewAllowlist(reg *catalog.Registry) *Allowlist {
	a := &Allowlist{
		domains: make(map[string]bool),
		schemes: make(map[string]bool),
	}
	for _, d := range reg.Domains() {
		a.domains[d] = true
	}
	for _, d := range storeDomains {
		a.domains[d] = true
	}
	for _, s := range reg.Schemes() {
		a.schemes[s] = true
	}
	for _, s := range storeSchemes {
		a.schemes[s] = true
	}
	return a
}

// Allow reports whether rawURL may be navigated to.
func (a *Allowlist) Allow(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "":
		return false
	case "http", "https":
		return a.allowHost(strings.ToLower(u.Hostname()))
	default:
		return a.schemes[scheme]
	}
}

func (a *Allowlist) allowHost(host string) bool {
	if host == "" {
		return false
	}
	if a.domains[host] {
		return true
	}
	// Subdomain match: host ends with ".domain".
	for d := range a.domains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
