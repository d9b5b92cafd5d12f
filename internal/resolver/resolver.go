package resolver

import (
	"strings"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

// Input is everything one routing decision depends on.
type Input struct {
	Title    string
	Query    string
	Category string
	Locale   string
	Region   string
	Provider string // requested provider, may be empty or an alias
	IsMobile bool
}

// Labels attached to OS-specific app-scheme fallbacks. The launch
// engine filters on these case-insensitively.
const (
	LabelIOS     = "iOS"
	LabelAndroid = "Android"
)

// aliases maps common shortcuts, misspellings and alternate spellings
// to canonical provider ids. Keys are lowercased.
var aliases = map[string]string{
	"nike training club": "ntc",
	"nike":               "ntc",
	"tb":                 "taobao",
	"jingdong":           "jd",
	"jd.com":             "jd",
	"pdd":                "pinduoduo",
	"饿了吗":                "eleme",
	"ele.me":             "eleme",
	"点评":                 "dianping",
	"抖音短视频":              "douyin",
	"tik tok":            "tiktok",
	"xhs":                "xiaohongshu",
	"红书":                 "xiaohongshu",
	"b站":                 "bilibili",
	"bili":               "bilibili",
	"高德":                 "amap",
	"gaode":              "amap",
	"携程网":                "ctrip",
	"trip.com":           "ctrip",
	"网易云":                "neteasemusic",
	"yt":                 "youtube",
	"gmaps":              "googlemaps",
	"google map":         "googlemaps",
	"google maps":        "googlemaps",
	"ig":                 "instagram",
	"insta":              "instagram",
	"uber eats":          "ubereats",
	"booking.com":        "booking",
}

// Resolve builds the full candidate-link bundle for one routing
// decision. Pure and deterministic for a fixed input; it never fails:
// unknown providers and categories degrade to a web search on the
// region's default provider.
func Resolve(reg *catalog.Registry, in Input) domain.CandidateLink {
	def := normalizeProvider(reg, in.Provider, in.Region)

	ctx := domain.LinkContext{
		Title:    in.Title,
		Query:    in.Query,
		Category: in.Category,
		Locale:   in.Locale,
		Region:   in.Region,
	}

	primary := primaryLink(def, ctx)

	// Fallback ordering is the auto-try priority contract downstream:
	// app schemes, then web, then store, then cross-provider fallbacks.
	fallbacks := appSchemeFallbacks(def, ctx)
	if primary.Type != domain.LinkTypeWeb {
		fallbacks = append(fallbacks, domain.OutboundLink{
			Type: domain.LinkTypeWeb,
			URL:  def.WebLink(ctx),
		})
	}
	if def.HasApp {
		fallbacks = append(fallbacks, storeLinks(def, ctx)...)
	}
	fallbacks = append(fallbacks, crossProviderFallbacks(reg, def, ctx, in.IsMobile)...)

	return domain.CandidateLink{
		Provider:  def.ID,
		Title:     in.Title,
		Primary:   primary,
		Fallbacks: domain.DedupeLinks(fallbacks),
		Metadata: &domain.Metadata{
			Region:              in.Region,
			Locale:              in.Locale,
			Category:            in.Category,
			ProviderDisplayName: def.DisplayName.For(in.Locale),
		},
	}
}

// normalizeProvider resolves the requested provider name to a catalog
// definition: exact id match, then alias table, then case-insensitive
// display-name match (zh or en), then the region default.
func normalizeProvider(reg *catalog.Registry, requested, region string) *catalog.ProviderDefinition {
	name := strings.ToLower(strings.TrimSpace(requested))

	if name != "" {
		if def, ok := reg.Get(name); ok {
			return def
		}
		if id, ok := aliases[name]; ok {
			if def, ok := reg.Get(id); ok {
				return def
			}
		}
		for _, def := range reg.All() {
			if strings.EqualFold(def.DisplayName.ZH, requested) ||
				strings.EqualFold(def.DisplayName.EN, requested) {
				return def
			}
		}
	}

	return regionDefault(reg, region)
}

func regionDefault(reg *catalog.Registry, region string) *catalog.ProviderDefinition {
	id := "google"
	if strings.EqualFold(region, domain.RegionCN) {
		id = "baidu"
	}
	if def, ok := reg.Get(id); ok {
		return def
	}
	// Fixture registries may omit the defaults; fall back to any
	// provider rather than returning nil.
	return reg.All()[0]
}

// primaryLink picks the deepest mechanism the provider supports:
// universal link, then iOS scheme, then Android scheme, then web.
// Universal links behave like normal URLs (safe default navigation)
// while bare custom schemes are brittle without a user gesture.
func primaryLink(def *catalog.ProviderDefinition, ctx domain.LinkContext) domain.OutboundLink {
	if def.UniversalLink != nil {
		return domain.OutboundLink{Type: domain.LinkTypeUniversalLink, URL: def.UniversalLink(ctx)}
	}
	if def.IOSScheme != nil {
		return domain.OutboundLink{Type: classifyScheme(def.IOSScheme(ctx)), URL: def.IOSScheme(ctx)}
	}
	if def.AndroidScheme != nil {
		return domain.OutboundLink{Type: classifyScheme(def.AndroidScheme(ctx)), URL: def.AndroidScheme(ctx)}
	}
	return domain.OutboundLink{Type: domain.LinkTypeWeb, URL: def.WebLink(ctx)}
}

// appSchemeFallbacks emits one entry per available OS scheme. When a
// provider has an Android package id but no explicit Android scheme, a
// generic intent is synthesized so an installed app can still be
// targeted.
func appSchemeFallbacks(def *catalog.ProviderDefinition, ctx domain.LinkContext) []domain.OutboundLink {
	var out []domain.OutboundLink

	if def.IOSScheme != nil {
		u := def.IOSScheme(ctx)
		out = append(out, domain.OutboundLink{Type: classifyScheme(u), URL: u, Label: LabelIOS})
	}

	switch {
	case def.AndroidScheme != nil:
		u := def.AndroidScheme(ctx)
		out = append(out, domain.OutboundLink{Type: classifyScheme(u), URL: u, Label: LabelAndroid})
	case def.AndroidPackageID != "":
		u := genericIntent(def.AndroidPackageID, def.WebLink(ctx))
		out = append(out, domain.OutboundLink{Type: domain.LinkTypeIntent, URL: u, Label: LabelAndroid})
	}

	return out
}

// classifyScheme tags intent:// URLs as intent, everything else as app.
func classifyScheme(u string) domain.LinkType {
	if strings.HasPrefix(u, "intent://") {
		return domain.LinkTypeIntent
	}
	return domain.LinkTypeApp
}
