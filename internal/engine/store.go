package engine

import (
	"net/url"
	"sort"
	"strings"

	"github.com/outlink-dev/outlink/internal/domain"
)

// WebLink returns the candidate's web destination: the primary if it is
// web-typed, else the first web fallback, else nil.
func WebLink(c *domain.CandidateLink) *domain.OutboundLink {
	if c == nil {
		return nil
	}
	if c.Primary.Type == domain.LinkTypeWeb {
		l := c.Primary
		return &l
	}
	for _, fb := range c.Fallbacks {
		if fb.Type == domain.LinkTypeWeb {
			l := fb
			return &l
		}
	}
	return nil
}

// StoreLinks returns all store-typed fallbacks.
func StoreLinks(c *domain.CandidateLink) []domain.OutboundLink {
	if c == nil {
		return nil
	}
	var out []domain.OutboundLink
	for _, fb := range c.Fallbacks {
		if fb.Type == domain.LinkTypeStore {
			out = append(out, fb)
		}
	}
	return out
}

func isAppStoreLink(l domain.OutboundLink) bool {
	u := strings.ToLower(l.URL)
	return strings.HasPrefix(u, "itms-apps://") ||
		strings.Contains(u, "apps.apple.com") ||
		strings.Contains(u, "itunes.apple.com") ||
		strings.Contains(strings.ToLower(l.Label), "app store")
}

func isGooglePlayIntent(l domain.OutboundLink) bool {
	return strings.HasPrefix(l.URL, "intent://") &&
		strings.Contains(l.URL, "com.android.vending")
}

func isMarketLink(l domain.OutboundLink) bool {
	return strings.HasPrefix(strings.ToLower(l.URL), "market://")
}

func isGooglePlayWeb(l domain.OutboundLink) bool {
	return strings.Contains(strings.ToLower(l.URL), "play.google.com")
}

func isAndroidStoreLink(l domain.OutboundLink) bool {
	return isGooglePlayIntent(l) || isMarketLink(l) || isGooglePlayWeb(l) ||
		strings.Contains(strings.ToLower(l.Label), "google play")
}

func isCNMarketLink(l domain.OutboundLink) bool {
	u := strings.ToLower(l.URL)
	return strings.HasPrefix(u, "tmast://") ||
		strings.Contains(u, "a.app.qq.com") ||
		strings.Contains(l.Label, "应用宝")
}

// FilterStoreLinksByOS keeps only store links usable on the given OS
// and ranks them for it. On iOS, Android-specific links are dropped and
// App Store links float to the front. On Android, iOS-only links are
// dropped and the order is Play intent, market://, CN marketplace,
// then the rest.
func FilterStoreLinksByOS(links []domain.OutboundLink, os OS) []domain.OutboundLink {
	switch os {
	case OSIOS:
		out := make([]domain.OutboundLink, 0, len(links))
		for _, l := range links {
			if isAndroidStoreLink(l) || isCNMarketLink(l) {
				continue
			}
			out = append(out, l)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return isAppStoreLink(out[i]) && !isAppStoreLink(out[j])
		})
		return out

	case OSAndroid:
		out := make([]domain.OutboundLink, 0, len(links))
		for _, l := range links {
			if isAppStoreLink(l) && !isAndroidStoreLink(l) {
				continue
			}
			out = append(out, l)
		}
		rank := func(l domain.OutboundLink) int {
			switch {
			case isGooglePlayIntent(l):
				return 0
			case isMarketLink(l):
				return 1
			case isCNMarketLink(l):
				return 2
			}
			return 3
		}
		sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
		return out
	}

	return links
}

// GooglePlayLink picks the best Google Play destination: the vending
// intent beats the play.google.com web link beats market://. Nil when
// none exists.
func GooglePlayLink(links []domain.OutboundLink) *domain.OutboundLink {
	var web, market *domain.OutboundLink
	for i := range links {
		l := links[i]
		switch {
		case isGooglePlayIntent(l):
			return &l
		case isGooglePlayWeb(l) && web == nil:
			web = &l
		case isMarketLink(l) && market == nil:
			market = &l
		}
	}
	if web != nil {
		return web
	}
	return market
}

// IsIntlAndroidContext reports whether the INTL-Android special casing
// applies: Android OS, region not explicitly CN, and either an explicit
// INTL region or no region with a non-CN deployment.
func IsIntlAndroidContext(c *domain.CandidateLink, os OS, deploymentCN bool) bool {
	if os != OSAndroid {
		return false
	}
	region := ""
	if c != nil && c.Metadata != nil {
		region = c.Metadata.Region
	}
	if strings.EqualFold(region, domain.RegionCN) {
		return false
	}
	if strings.EqualFold(region, domain.RegionINTL) {
		return true
	}
	return region == "" && !deploymentCN
}

// FallbackGooglePlayURL builds a Play Store search URL for when no
// concrete store link exists. The search term prefers the provider
// display name, then the provider id, then the title.
func FallbackGooglePlayURL(c *domain.CandidateLink) string {
	term := "app"
	switch {
	case c == nil:
	case c.Metadata != nil && c.Metadata.ProviderDisplayName != "":
		term = c.Metadata.ProviderDisplayName
	case c.Provider != "":
		term = c.Provider
	case c.Title != "":
		term = c.Title
	}
	return "https://play.google.com/store/search?c=apps&q=" + url.QueryEscape(term)
}
