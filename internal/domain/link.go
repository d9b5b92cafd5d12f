package domain

// LinkType classifies an outbound destination. It drives how the launch
// engine treats a link: auto-try-eligible (app, intent, universal_link),
// store-only (store), or passive (web, search, video, map).
type LinkType string

const (
	LinkTypeApp           LinkType = "app"
	LinkTypeIntent        LinkType = "intent"
	LinkTypeUniversalLink LinkType = "universal_link"
	LinkTypeWeb           LinkType = "web"
	LinkTypeStore         LinkType = "store"
	LinkTypeSearch        LinkType = "search"
	LinkTypeVideo         LinkType = "video"
	LinkTypeMap           LinkType = "map"
)

// AutoTryEligible reports whether a link of this type may be attempted
// automatically, without a user gesture.
func (t LinkType) AutoTryEligible() bool {
	switch t {
	case LinkTypeApp, LinkTypeIntent, LinkTypeUniversalLink:
		return true
	case LinkTypeWeb, LinkTypeStore, LinkTypeSearch, LinkTypeVideo, LinkTypeMap:
		return false
	}
	return false
}

// Valid reports whether t is one of the closed set of link types.
func (t LinkType) Valid() bool {
	switch t {
	case LinkTypeApp, LinkTypeIntent, LinkTypeUniversalLink,
		LinkTypeWeb, LinkTypeStore, LinkTypeSearch, LinkTypeVideo, LinkTypeMap:
		return true
	}
	return false
}

// OutboundLink is one concrete destination.
//
// URL must always be a fully-formed, scheme-valid string.
type OutboundLink struct {
	Type  LinkType `json:"type"`
	URL   string   `json:"url"`
	Label string   `json:"label,omitempty"`
}

// Key returns the deduplication key for a link: same type and same URL
// means the same link, regardless of label.
func (l OutboundLink) Key() string {
	return string(l.Type) + ":" + l.URL
}

// Metadata carries the resolution context a CandidateLink was built in.
type Metadata struct {
	Region              string `json:"region,omitempty"`
	Locale              string `json:"locale,omitempty"`
	Category            string `json:"category,omitempty"`
	ProviderDisplayName string `json:"providerDisplayName,omitempty"`
}

// CandidateLink is the fully resolved, ranked bundle of destinations for
// one routing decision. It is constructed once by the resolver, encoded
// into a query parameter, and reconstructed once on the landing side.
// It is never mutated in place: any adjustment (OS filtering, sanitizing)
// produces a new derived slice.
//
// Fallbacks order encodes priority (first tried first) and must never
// contain duplicates by (type, url).
type CandidateLink struct {
	Provider  string         `json:"provider"`
	Title     string         `json:"title"`
	Primary   OutboundLink   `json:"primary"`
	Fallbacks []OutboundLink `json:"fallbacks,omitempty"`
	Metadata  *Metadata      `json:"metadata,omitempty"`
}

// DedupeLinks returns links with duplicates (by Key) removed,
// preserving first-seen order. The input is not modified.
func DedupeLinks(links []OutboundLink) []OutboundLink {
	seen := make(map[string]bool, len(links))
	out := make([]OutboundLink, 0, len(links))
	for _, l := range links {
		k := l.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}
