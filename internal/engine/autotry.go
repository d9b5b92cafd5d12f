package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/outlink-dev/outlink/internal/domain"
)

// Auto-try priority on Android: intents resolve most precisely, app
// schemes next, universal links last.
func autoTryRank(t domain.LinkType) int {
	switch t {
	case domain.LinkTypeIntent:
		return 0
	case domain.LinkTypeApp:
		return 1
	case domain.LinkTypeUniversalLink:
		return 2
	}
	return 3
}

// AutoTryLinks selects and orders the links to attempt automatically
// for the given OS. The input candidate is never modified; the result
// is a fresh slice.
func AutoTryLinks(c *domain.CandidateLink, os OS) []domain.OutboundLink {
	if c == nil {
		return nil
	}

	var links []domain.OutboundLink
	if c.Primary.Type.AutoTryEligible() {
		links = append(links, c.Primary)
	}
	for _, fb := range c.Fallbacks {
		if !fb.Type.AutoTryEligible() {
			continue
		}
		// A fallback app link belonging to a different provider
		// carries that provider's display name as label: it is a
		// different app entirely, not an OS variant of this one, and
		// must never be auto-tried.
		if !isOwnAppLabel(fb.Label) {
			continue
		}
		links = append(links, fb)
	}

	links = filterByOSLabel(links, os)

	if os == OSIOS {
		// intent:// is an Android-only mechanism.
		links = withoutType(links, domain.LinkTypeIntent)
	}

	links = dedupeByURL(links)

	if os == OSAndroid {
		links = patchAndroidIntents(links)
		if containsAnyType(links, domain.LinkTypeIntent, domain.LinkTypeApp) {
			// A universal link is redundant once a more specific native
			// mechanism is available, and keeping it risks the browser
			// opening before the intent does.
			links = withoutType(links, domain.LinkTypeUniversalLink)
		}
		sort.SliceStable(links, func(i, j int) bool {
			return autoTryRank(links[i].Type) < autoTryRank(links[j].Type)
		})
	}

	return links
}

// isOwnAppLabel accepts links with no label or with a bare OS label.
func isOwnAppLabel(label string) bool {
	switch strings.ToLower(label) {
	case "", "ios", "android":
		return true
	}
	return false
}

// filterByOSLabel drops links labeled for the opposite OS. Links with
// no identifiable OS marker pass.
func filterByOSLabel(links []domain.OutboundLink, os OS) []domain.OutboundLink {
	var opposite string
	switch os {
	case OSAndroid:
		opposite = "ios"
	case OSIOS:
		opposite = "android"
	default:
		return links
	}

	out := make([]domain.OutboundLink, 0, len(links))
	for _, l := range links {
		if strings.Contains(strings.ToLower(l.Label), opposite) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func withoutType(links []domain.OutboundLink, t domain.LinkType) []domain.OutboundLink {
	out := make([]domain.OutboundLink, 0, len(links))
	for _, l := range links {
		if l.Type != t {
			out = append(out, l)
		}
	}
	return out
}

func containsAnyType(links []domain.OutboundLink, types ...domain.LinkType) bool {
	for _, l := range links {
		for _, t := range types {
			if l.Type == t {
				return true
			}
		}
	}
	return false
}

func dedupeByURL(links []domain.OutboundLink) []domain.OutboundLink {
	seen := make(map[string]bool, len(links))
	out := make([]domain.OutboundLink, 0, len(links))
	for _, l := range links {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		out = append(out, l)
	}
	return out
}

// patchAndroidIntents strips the browser fallback from intent URLs
// before auto-trying. If left in, ambiguity makes the OS open the
// browser fallback immediately instead of waiting for intent
// resolution, defeating the try-app-first sequence.
func patchAndroidIntents(links []domain.OutboundLink) []domain.OutboundLink {
	out := make([]domain.OutboundLink, 0, len(links))
	for _, l := range links {
		if l.Type == domain.LinkTypeIntent {
			l.URL = StripIntentBrowserFallback(l.URL)
		}
		out = append(out, l)
	}
	return out
}

var (
	browserFallbackRe = regexp.MustCompile(`;S\.browser_fallback_url=[^;]*`)
	doubleSemiRe      = regexp.MustCompile(`;;+`)
)

// StripIntentBrowserFallback removes the S.browser_fallback_url
// component from an intent URL and collapses any resulting double
// semicolons. Non-intent input is returned unchanged.
func StripIntentBrowserFallback(u string) string {
	if !strings.HasPrefix(u, "intent://") {
		return u
	}
	u = browserFallbackRe.ReplaceAllString(u, "")
	return doubleSemiRe.ReplaceAllString(u, ";")
}

// Legacy TikTok intent markers. The scheme-qualified form is unreliable
// on some Android versions; a package-only intent resolves correctly.
const (
	legacyTikTokScheme  = "scheme=snssdk1128"
	legacyTikTokPackage = "com.zhiliaoapp.musically"
)

// SanitizeIntlAndroid is the second-pass sanitizer for the INTL-Android
// deployment mode: suppress universal links when a native mechanism
// exists, strip intent browser fallbacks, rewrite the legacy TikTok
// intent, and dedupe by (type, url).
func SanitizeIntlAndroid(links []domain.OutboundLink) []domain.OutboundLink {
	out := make([]domain.OutboundLink, 0, len(links))
	hasNative := containsAnyType(links, domain.LinkTypeIntent, domain.LinkTypeApp)

	for _, l := range links {
		if hasNative && l.Type == domain.LinkTypeUniversalLink {
			continue
		}
		if l.Type == domain.LinkTypeIntent {
			l.URL = StripIntentBrowserFallback(l.URL)
			l.URL = rewriteLegacyTikTokIntent(l.URL)
		}
		out = append(out, l)
	}

	return domain.DedupeLinks(out)
}

func rewriteLegacyTikTokIntent(u string) string {
	if !strings.HasPrefix(u, "intent://") {
		return u
	}
	if !strings.Contains(u, legacyTikTokScheme) || !strings.Contains(u, legacyTikTokPackage) {
		return u
	}
	return "intent://#Intent;package=" + legacyTikTokPackage + ";end"
}
