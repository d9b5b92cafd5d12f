package resolver

import (
	"net/url"
	"strings"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

// Store link labels. The launch engine ranks store links by these.
const (
	LabelAppStore    = "App Store"
	LabelGooglePlay  = "Google Play"
	LabelCNMarketApp = "应用宝"
	LabelCNMarketWeb = "应用宝网页"
)

// genericIntent targets a package without a scheme, with a browser
// fallback so unmatched intents degrade to the web link.
func genericIntent(pkg, webFallback string) string {
	return "intent://#Intent;package=" + pkg +
		";S.browser_fallback_url=" + url.QueryEscape(webFallback) + ";end"
}

// storeLinks builds the install destinations for a provider that ships
// an app. The iOS pair (native itms-apps plus web mirror) is always
// present; Android store links depend on the package id and region.
func storeLinks(def *catalog.ProviderDefinition, ctx domain.LinkContext) []domain.OutboundLink {
	name := url.QueryEscape(def.DisplayName.EN)

	out := []domain.OutboundLink{
		{
			Type:  domain.LinkTypeStore,
			URL:   "itms-apps://itunes.apple.com/search?term=" + name,
			Label: LabelAppStore,
		},
		{
			Type:  domain.LinkTypeStore,
			URL:   "https://apps.apple.com/search?term=" + name,
			Label: LabelAppStore,
		},
	}

	if def.AndroidPackageID == "" {
		return domain.DedupeLinks(out)
	}

	cn := strings.EqualFold(ctx.Region, domain.RegionCN)

	if !cn {
		// Google Play intent resolves to the Play app when installed.
		out = append(out, domain.OutboundLink{
			Type: domain.LinkTypeStore,
			URL: "intent://details?id=" + def.AndroidPackageID +
				"#Intent;scheme=market;package=com.android.vending;end",
			Label: LabelGooglePlay,
		})
	}

	out = append(out, domain.OutboundLink{
		Type:  domain.LinkTypeStore,
		URL:   "market://details?id=" + def.AndroidPackageID,
		Label: LabelGooglePlay,
	})

	if cn {
		// Google Play is unreachable in the CN deployment; route to
		// the Tencent marketplace instead, native scheme then web.
		out = append(out,
			domain.OutboundLink{
				Type:  domain.LinkTypeStore,
				URL:   "tmast://appdetails?pkgname=" + def.AndroidPackageID,
				Label: LabelCNMarketApp,
			},
			domain.OutboundLink{
				Type:  domain.LinkTypeStore,
				URL:   "https://a.app.qq.com/o/simple.jsp?pkgname=" + def.AndroidPackageID,
				Label: LabelCNMarketWeb,
			},
		)
	} else {
		out = append(out, domain.OutboundLink{
			Type:  domain.LinkTypeStore,
			URL:   "https://play.google.com/store/apps/details?id=" + def.AndroidPackageID,
			Label: LabelGooglePlay,
		})
	}

	return domain.DedupeLinks(out)
}
