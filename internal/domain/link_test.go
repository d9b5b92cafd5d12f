package domain

import (
	"testing"
)

func TestLinkTypeAutoTryEligible(t *testing.T) {
	tests := []struct {
		linkType LinkType
		want     bool
	}{
		{LinkTypeApp, true},
		{LinkTypeIntent, true},
		{LinkTypeUniversalLink, true},
		{LinkTypeWeb, false},
		{LinkTypeStore, false},
		{LinkTypeSearch, false},
		{LinkTypeVideo, false},
		{LinkTypeMap, false},
		{LinkType("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.linkType), func(t *testing.T) {
			if got := tt.linkType.AutoTryEligible(); got != tt.want {
				t.Errorf("AutoTryEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeLinks(t *testing.T) {
	links := []OutboundLink{
		{Type: LinkTypeApp, URL: "app://x", Label: "first"},
		{Type: LinkTypeApp, URL: "app://x", Label: "second"},
		{Type: LinkTypeWeb, URL: "app://x"},
		{Type: LinkTypeWeb, URL: "https://example.com"},
		{Type: LinkTypeWeb, URL: "https://example.com"},
	}

	got := DedupeLinks(links)
	if len(got) != 3 {
		t.Fatalf("DedupeLinks() kept %d links, want 3: %v", len(got), got)
	}
	// First occurrence wins, label included.
	if got[0].Label != "first" {
		t.Errorf("first duplicate kept label %q, want %q", got[0].Label, "first")
	}
	// Same URL under a different type is a different link.
	if got[1].Type != LinkTypeWeb || got[1].URL != "app://x" {
		t.Errorf("type-distinct duplicate dropped: %v", got)
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		name string
		ctx  LinkContext
		want string
	}{
		{"query wins over title", LinkContext{Title: "标题", Query: "keyword"}, "keyword"},
		{"title when no query", LinkContext{Title: "标题"}, "标题"},
		{"empty", LinkContext{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.SearchText(); got != tt.want {
				t.Errorf("SearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}
