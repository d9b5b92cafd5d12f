package integration

import (
	"strings"
	"testing"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/codec"
	"github.com/outlink-dev/outlink/internal/domain"
	"github.com/outlink-dev/outlink/internal/engine"
	"github.com/outlink-dev/outlink/internal/resolver"
)

// TestResolveEncodeDecodeLaunchPipeline walks the full outbound flow
// for a Chinese-mainland shopping search: resolve a candidate bundle,
// encode it into a transport token, decode it back through the
// allow-list, and compute the launch plan for a mobile client.
func TestResolveEncodeDecodeLaunchPipeline(t *testing.T) {
	reg := catalog.Builtin()

	link := resolver.Resolve(reg, resolver.Input{
		Title:    "冬季外套",
		Category: "shopping",
		Locale:   "zh-CN",
		Region:   "CN",
		Provider: "jd",
		IsMobile: true,
	})

	if !strings.HasPrefix(link.Primary.URL, "openapp.jdmobile://") {
		t.Fatalf("primary = %q, want the JD app scheme", link.Primary.URL)
	}
	if link.Metadata == nil || link.Metadata.ProviderDisplayName != "京东" {
		t.Errorf("metadata display name = %+v, want 京东", link.Metadata)
	}

	var hasMarket, hasWeb bool
	for _, fb := range link.Fallbacks {
		if strings.HasPrefix(fb.URL, "market://details?id=com.jingdong.app.mall") {
			hasMarket = true
		}
		if fb.Type == domain.LinkTypeWeb {
			hasWeb = true
		}
		if strings.Contains(fb.URL, "com.android.vending") {
			t.Errorf("CN resolution produced a Play intent: %q", fb.URL)
		}
	}
	if !hasMarket {
		t.Error("CN shopping bundle missing the market:// store fallback")
	}
	if !hasWeb {
		t.Error("bundle missing a web fallback")
	}

	token, err := codec.Encode(link)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, derr := codec.Decode(token, "zh-CN", codec.NewAllowlist(reg))
	if derr != nil {
		t.Fatalf("Decode failed: %v", derr)
	}
	if decoded.Primary.URL != link.Primary.URL {
		t.Errorf("primary changed in transit: %q != %q", decoded.Primary.URL, link.Primary.URL)
	}
	if len(decoded.Fallbacks) != len(link.Fallbacks) {
		t.Errorf("fallbacks filtered in transit: %d != %d",
			len(decoded.Fallbacks), len(link.Fallbacks))
	}

	// Launch plan on an iPhone: the app scheme is auto-tried, store and
	// web links are not.
	autoTry := engine.AutoTryLinks(decoded, engine.OSIOS)
	if len(autoTry) == 0 {
		t.Fatal("no auto-try links for an app-scheme bundle")
	}
	for _, l := range autoTry {
		if !l.Type.AutoTryEligible() {
			t.Errorf("auto-try contains ineligible link type %q", l.Type)
		}
	}

	stores := engine.FilterStoreLinksByOS(engine.StoreLinks(decoded), engine.OSIOS)
	for _, s := range stores {
		if strings.HasPrefix(s.URL, "market://") {
			t.Errorf("Android store link offered on iOS: %q", s.URL)
		}
	}
}

// TestDecodeDropsForeignFallbacks covers a hand-crafted token whose
// fallback list points outside the provider catalog: decode succeeds
// but only the allow-listed fallbacks survive.
func TestDecodeDropsForeignFallbacks(t *testing.T) {
	reg := catalog.Builtin()

	crafted := domain.CandidateLink{
		Provider: "youtube",
		Title:    "lofi beats",
		Primary: domain.OutboundLink{
			Type: domain.LinkTypeUniversalLink,
			URL:  "https://www.youtube.com/results?search_query=lofi+beats",
		},
		Fallbacks: []domain.OutboundLink{
			{Type: domain.LinkTypeWeb, URL: "https://evil.example.com/phish"},
			{Type: domain.LinkTypeStore, URL: "https://apps.apple.com/app/youtube/id544007664", Label: "App Store"},
		},
	}

	token, err := codec.Encode(crafted)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, derr := codec.Decode(token, "en", codec.NewAllowlist(reg))
	if derr != nil {
		t.Fatalf("Decode failed: %v", derr)
	}

	if len(decoded.Fallbacks) != 1 {
		t.Fatalf("fallbacks = %v, want only the App Store link", decoded.Fallbacks)
	}
	if !strings.HasPrefix(decoded.Fallbacks[0].URL, "https://apps.apple.com/") {
		t.Errorf("surviving fallback = %q", decoded.Fallbacks[0].URL)
	}
}

// TestDecodeRejectsForeignPrimary: a disallowed primary is a hard
// rejection, not a silent filter.
func TestDecodeRejectsForeignPrimary(t *testing.T) {
	reg := catalog.Builtin()

	crafted := domain.CandidateLink{
		Provider: "youtube",
		Title:    "x",
		Primary:  domain.OutboundLink{Type: domain.LinkTypeWeb, URL: "https://evil.example.com/"},
	}

	token, err := codec.Encode(crafted)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, derr := codec.Decode(token, "en", codec.NewAllowlist(reg)); derr == nil {
		t.Fatal("Decode accepted a disallowed primary")
	}
}

// TestPipelineAcrossCategories resolves the default provider of every
// category in both regions and pushes each bundle through the codec.
func TestPipelineAcrossCategories(t *testing.T) {
	reg := catalog.Builtin()
	allow := codec.NewAllowlist(reg)
	categories := []string{"shopping", "food", "travel", "video", "fitness"}
	regions := []string{"CN", "INTL"}

	for _, region := range regions {
		for _, category := range categories {
			t.Run(region+"/"+category, func(t *testing.T) {
				link := resolver.Resolve(reg, resolver.Input{
					Title:    "test item",
					Category: category,
					Region:   region,
					IsMobile: true,
				})

				if link.Primary.URL == "" {
					t.Fatal("empty primary URL")
				}

				token, err := codec.Encode(link)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				decoded, derr := codec.Decode(token, "en", allow)
				if derr != nil {
					t.Fatalf("Decode rejected a catalog-built bundle: %v", derr)
				}
				if len(decoded.Fallbacks) != len(link.Fallbacks) {
					t.Errorf("catalog-built fallbacks were filtered: %d != %d",
						len(decoded.Fallbacks), len(link.Fallbacks))
				}
			})
		}
	}
}

// TestReturnToPassThrough mirrors how the redirect handler treats the
// returnTo query parameter.
func TestReturnToPassThrough(t *testing.T) {
	if got := codec.ValidateReturnTo("/category/food?x=1"); got != "/category/food?x=1" {
		t.Errorf("relative path rejected: %q", got)
	}
	if got := codec.ValidateReturnTo("//evil.com"); got != "" {
		t.Errorf("protocol-relative URL accepted: %q", got)
	}
}
