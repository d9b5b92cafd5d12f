package resolver

import (
	"strings"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

// providerKind re-tags a cross-provider fallback so the landing page
// can render appropriate iconography: map providers become map links,
// video providers video links, everything else search.
var providerKind = map[string]domain.LinkType{
	"amap":       domain.LinkTypeMap,
	"googlemaps": domain.LinkTypeMap,
	"youtube":    domain.LinkTypeVideo,
	"tiktok":     domain.LinkTypeVideo,
	"douyin":     domain.LinkTypeVideo,
	"bilibili":   domain.LinkTypeVideo,
}

// Cross-provider fallback orderings, distinct static tables per region.
// Order encodes render priority on the landing page.
var (
	crossCN = map[string][]string{
		catalog.CategoryShopping: {"taobao", "jd", "pinduoduo"},
		catalog.CategoryFood:     {"meituan", "eleme", "dianping"},
		catalog.CategoryTravel:   {"ctrip", "amap", "dianping"},
		catalog.CategoryVideo:    {"douyin", "bilibili", "xiaohongshu"},
		catalog.CategoryFitness:  {"keep", "bilibili"},
	}
	crossINTL = map[string][]string{
		catalog.CategoryShopping: {"amazon", "google"},
		catalog.CategoryFood:     {"google", "googlemaps"},
		catalog.CategoryTravel:   {"booking", "tripadvisor", "expedia"},
		catalog.CategoryVideo:    {"youtube", "tiktok"},
		catalog.CategoryFitness:  {"ntc", "youtube"},
	}
	crossINTLMobile = map[string][]string{
		catalog.CategoryShopping: {"amazon", "instagram", "google"},
		catalog.CategoryFood:     {"ubereats", "googlemaps", "google"},
		catalog.CategoryTravel:   {"booking", "airbnb", "tripadvisor"},
		catalog.CategoryVideo:    {"youtube", "tiktok", "instagram"},
		catalog.CategoryFitness:  {"ntc", "youtube", "spotify"},
	}
)

// crossProviderFallbacks resolves same-category alternates, skipping
// the selected provider. The INTL mobile table must be consulted before
// the generic region branch: INTL mobile has its own provider ordering
// distinct from INTL web.
func crossProviderFallbacks(reg *catalog.Registry, selected *catalog.ProviderDefinition, ctx domain.LinkContext, isMobile bool) []domain.OutboundLink {
	var ids []string
	switch {
	case strings.EqualFold(ctx.Region, domain.RegionINTL) && isMobile:
		ids = crossINTLMobile[ctx.Category]
	case strings.EqualFold(ctx.Region, domain.RegionCN):
		ids = crossCN[ctx.Category]
	default:
		ids = crossINTL[ctx.Category]
	}

	out := make([]domain.OutboundLink, 0, len(ids))
	for _, id := range ids {
		if id == selected.ID {
			continue
		}
		def, ok := reg.Get(id)
		if !ok {
			continue
		}

		link := primaryLink(def, ctx)
		kind := providerKind[id]
		if kind == "" {
			kind = domain.LinkTypeSearch
		}
		out = append(out, domain.OutboundLink{
			Type:  kind,
			URL:   link.URL,
			Label: def.DisplayName.For(ctx.Locale),
		})
	}
	return out
}
