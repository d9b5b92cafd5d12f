package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/outlink-dev/outlink/internal/domain"
)

// Builder produces a fully-formed URL for a provider from a link
// context. Builders are pure: no I/O, no randomness, and they must
// URL-encode all user-supplied text.
type Builder func(ctx domain.LinkContext) string

// DisplayName holds the per-locale display names of a provider.
type DisplayName struct {
	ZH string
	EN string
}

// For returns the display name for a locale, falling back to English.
func (d DisplayName) For(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "zh") && d.ZH != "" {
		return d.ZH
	}
	if d.EN != "" {
		return d.EN
	}
	return d.ZH
}

// ProviderDefinition is the single source of truth for how to reach a
// provider. Immutable, process-wide, read-only.
//
// WebLink is the only required builder: it guarantees a safe fallback
// always exists.
type ProviderDefinition struct {
	ID               string
	DisplayName      DisplayName
	Domains          []string // web domains this provider may be reached on
	Schemes          []string // custom URL schemes this provider registers
	HasApp           bool
	AndroidPackageID string

	WebLink       Builder // required
	UniversalLink Builder
	IOSScheme     Builder
	AndroidScheme Builder
}

// Registry is an immutable set of provider definitions. It is built
// once (at startup, or per test from a fixture) and only ever read
// through accessors afterwards.
type Registry struct {
	providers map[string]*ProviderDefinition
	domains   []string
	schemes   []string
}

// NewRegistry builds a registry from definitions. It returns an error
// if a definition is missing its id or web link, or if two definitions
// share an id.
func NewRegistry(defs []*ProviderDefinition) (*Registry, error) {
	providers := make(map[string]*ProviderDefinition, len(defs))
	domainSet := make(map[string]bool)
	schemeSet := make(map[string]bool)

	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("provider definition without id")
		}
		if def.WebLink == nil {
			return nil, fmt.Errorf("provider %q has no web link builder", def.ID)
		}
		if _, dup := providers[def.ID]; dup {
			return nil, fmt.Errorf("duplicate provider id %q", def.ID)
		}
		providers[def.ID] = def
		for _, d := range def.Domains {
			domainSet[strings.ToLower(d)] = true
		}
		for _, s := range def.Schemes {
			schemeSet[strings.ToLower(s)] = true
		}
	}

	return &Registry{
		providers: providers,
		domains:   sortedKeys(domainSet),
		schemes:   sortedKeys(schemeSet),
	}, nil
}

// MustNewRegistry is NewRegistry for static tables, where a failure is
// a programmer error.
func MustNewRegistry(defs []*ProviderDefinition) *Registry {
	reg, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return reg
}

// Get returns the definition for a provider id.
func (r *Registry) Get(id string) (*ProviderDefinition, bool) {
	def, ok := r.providers[id]
	return def, ok
}

// All returns every definition, ordered by id.
func (r *Registry) All() []*ProviderDefinition {
	out := make([]*ProviderDefinition, 0, len(r.providers))
	for _, def := range r.providers {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered providers.
func (r *Registry) Count() int { return len(r.providers) }

// Domains returns every registered web domain, lowercased and sorted.
// This set backs the outbound allow-list.
func (r *Registry) Domains() []string { return r.domains }

// Schemes returns every registered custom URL scheme, lowercased and
// sorted.
func (r *Registry) Schemes() []string { return r.schemes }

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
