package overlay

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

// queryPlaceholder is replaced with the URL-encoded search text.
const queryPlaceholder = "{query}"

// Mapper converts overlay provider specs to catalog definitions.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapProviders converts an overlay config to catalog provider
// definitions. Specs without an id or a web search URL are invalid:
// the overlay is operator-written, so a bad entry is surfaced as an
// error instead of being skipped silently.
func (m *Mapper) MapProviders(config *Config) ([]*catalog.ProviderDefinition, error) {
	if config == nil || len(config.Providers) == 0 {
		return nil, fmt.Errorf("no providers found in overlay config")
	}

	defs := make([]*catalog.ProviderDefinition, 0, len(config.Providers))
	for _, spec := range config.Providers {
		if spec.ID == "" {
			return nil, fmt.Errorf("overlay provider without id")
		}
		if spec.WebSearchURL == "" {
			return nil, fmt.Errorf("overlay provider %q has no webSearchUrl", spec.ID)
		}

		def := &catalog.ProviderDefinition{
			ID: spec.ID,
			DisplayName: catalog.DisplayName{
				ZH: spec.DisplayNameZH,
				EN: spec.DisplayNameEN,
			},
			Domains:          spec.Domains,
			Schemes:          spec.Schemes,
			HasApp:           spec.HasApp,
			AndroidPackageID: spec.AndroidPackageID,
			WebLink:          templateBuilder(spec.WebSearchURL),
		}
		if spec.UniversalLinkURL != "" {
			def.UniversalLink = templateBuilder(spec.UniversalLinkURL)
		}
		if spec.IOSSchemeURL != "" {
			def.IOSScheme = templateBuilder(spec.IOSSchemeURL)
		}
		if spec.AndroidSchemeURL != "" {
			def.AndroidScheme = templateBuilder(spec.AndroidSchemeURL)
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// templateBuilder turns a URL template into a pure link builder.
func templateBuilder(template string) catalog.Builder {
	return func(ctx domain.LinkContext) string {
		return strings.ReplaceAll(template, queryPlaceholder, url.QueryEscape(ctx.SearchText()))
	}
}

// MergeWithBuiltin overlays defs on top of the builtin catalog:
// overlay entries win on id collision.
func MergeWithBuiltin(defs []*catalog.ProviderDefinition) (*catalog.Registry, error) {
	merged := make([]*catalog.ProviderDefinition, 0, catalog.Builtin().Count()+len(defs))
	overridden := make(map[string]bool, len(defs))
	for _, def := range defs {
		overridden[def.ID] = true
	}
	for _, def := range catalog.Builtin().All() {
		if !overridden[def.ID] {
			merged = append(merged, def)
		}
	}
	merged = append(merged, defs...)
	return catalog.NewRegistry(merged)
}
