package catalog

import (
	"fmt"
	"sync"

	"github.com/outlink-dev/outlink/internal/domain"
)

// Categories the weighted tables and cross-provider fallbacks cover.
// Unknown categories degrade to the region default search provider.
const (
	CategoryShopping = "shopping"
	CategoryFood     = "food"
	CategoryTravel   = "travel"
	CategoryVideo    = "video"
	CategoryFitness  = "fitness"
)

// Categories returns all known category identifiers.
func Categories() []string {
	return []string{CategoryShopping, CategoryFood, CategoryTravel, CategoryVideo, CategoryFitness}
}

// WeightedProvider assigns a relative selection weight to a provider
// within one (category, region, mobile) bucket. Weights inside a bucket
// sum to ~1.0. This feeds recommendation diversity upstream, not the
// resolver itself.
type WeightedProvider struct {
	Provider string
	Weight   float64
	Tier     int
}

type weightKey struct {
	category string
	region   string
	mobile   bool
}

var (
	weightsOnce sync.Once
	weights     map[weightKey][]WeightedProvider
)

// WeightedProvidersFor returns the weighted provider list for a bucket.
// The INTL mobile bucket is distinct from INTL web: callers must not
// collapse the two. Returns nil for unknown buckets.
func WeightedProvidersFor(category, region string, mobile bool) []WeightedProvider {
	weightsOnce.Do(buildWeights)
	if region == domain.RegionINTL && mobile {
		if wp, ok := weights[weightKey{category, domain.RegionINTL, true}]; ok {
			return wp
		}
	}
	if wp, ok := weights[weightKey{category, region, false}]; ok {
		return wp
	}
	return nil
}

func buildWeights() {
	weights = map[weightKey][]WeightedProvider{
		// CN buckets (web and mobile share one table).
		{CategoryShopping, domain.RegionCN, false}: {
			{Provider: "taobao", Weight: 0.40, Tier: 1},
			{Provider: "jd", Weight: 0.35, Tier: 1},
			{Provider: "pinduoduo", Weight: 0.25, Tier: 2},
		},
		{CategoryFood, domain.RegionCN, false}: {
			{Provider: "meituan", Weight: 0.50, Tier: 1},
			{Provider: "eleme", Weight: 0.30, Tier: 1},
			{Provider: "dianping", Weight: 0.20, Tier: 2},
		},
		{CategoryTravel, domain.RegionCN, false}: {
			{Provider: "ctrip", Weight: 0.55, Tier: 1},
			{Provider: "amap", Weight: 0.30, Tier: 1},
			{Provider: "dianping", Weight: 0.15, Tier: 2},
		},
		{CategoryVideo, domain.RegionCN, false}: {
			{Provider: "douyin", Weight: 0.50, Tier: 1},
			{Provider: "bilibili", Weight: 0.35, Tier: 1},
			{Provider: "xiaohongshu", Weight: 0.15, Tier: 2},
		},
		{CategoryFitness, domain.RegionCN, false}: {
			{Provider: "keep", Weight: 0.65, Tier: 1},
			{Provider: "bilibili", Weight: 0.35, Tier: 2},
		},

		// INTL web buckets.
		{CategoryShopping, domain.RegionINTL, false}: {
			{Provider: "amazon", Weight: 0.60, Tier: 1},
			{Provider: "google", Weight: 0.40, Tier: 2},
		},
		{CategoryFood, domain.RegionINTL, false}: {
			{Provider: "google", Weight: 0.55, Tier: 1},
			{Provider: "googlemaps", Weight: 0.45, Tier: 1},
		},
		{CategoryTravel, domain.RegionINTL, false}: {
			{Provider: "booking", Weight: 0.35, Tier: 1},
			{Provider: "tripadvisor", Weight: 0.35, Tier: 1},
			{Provider: "expedia", Weight: 0.30, Tier: 2},
		},
		{CategoryVideo, domain.RegionINTL, false}: {
			{Provider: "youtube", Weight: 0.65, Tier: 1},
			{Provider: "tiktok", Weight: 0.35, Tier: 2},
		},
		{CategoryFitness, domain.RegionINTL, false}: {
			{Provider: "ntc", Weight: 0.55, Tier: 1},
			{Provider: "youtube", Weight: 0.45, Tier: 2},
		},

		// INTL mobile buckets, weighted toward app-capable providers.
		{CategoryShopping, domain.RegionINTL, true}: {
			{Provider: "amazon", Weight: 0.55, Tier: 1},
			{Provider: "instagram", Weight: 0.20, Tier: 2},
			{Provider: "google", Weight: 0.25, Tier: 2},
		},
		{CategoryFood, domain.RegionINTL, true}: {
			{Provider: "ubereats", Weight: 0.55, Tier: 1},
			{Provider: "googlemaps", Weight: 0.30, Tier: 1},
			{Provider: "google", Weight: 0.15, Tier: 2},
		},
		{CategoryTravel, domain.RegionINTL, true}: {
			{Provider: "booking", Weight: 0.35, Tier: 1},
			{Provider: "airbnb", Weight: 0.30, Tier: 1},
			{Provider: "tripadvisor", Weight: 0.20, Tier: 2},
			{Provider: "expedia", Weight: 0.15, Tier: 2},
		},
		{CategoryVideo, domain.RegionINTL, true}: {
			{Provider: "youtube", Weight: 0.50, Tier: 1},
			{Provider: "tiktok", Weight: 0.35, Tier: 1},
			{Provider: "instagram", Weight: 0.15, Tier: 2},
		},
		{CategoryFitness, domain.RegionINTL, true}: {
			{Provider: "ntc", Weight: 0.50, Tier: 1},
			{Provider: "youtube", Weight: 0.30, Tier: 2},
			{Provider: "spotify", Weight: 0.20, Tier: 2},
		},
	}

	// Every weighted provider id must exist in the builtin registry.
	reg := Builtin()
	for key, bucket := range weights {
		for _, wp := range bucket {
			if _, ok := reg.Get(wp.Provider); !ok {
				panic(fmt.Sprintf("weighted provider %q (bucket %v) not in catalog", wp.Provider, key))
			}
		}
	}
}
