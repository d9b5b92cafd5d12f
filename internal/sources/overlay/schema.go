package overlay

// Config is the top-level structure of the catalog overlay file.
type Config struct {
	Providers []ProviderSpec `yaml:"providers"`
}

// ProviderSpec declares one provider to add to (or override in) the
// builtin catalog. URL fields are templates: the literal `{query}` is
// replaced with the URL-encoded search text at build time.
type ProviderSpec struct {
	ID               string   `yaml:"id"`
	DisplayNameZH    string   `yaml:"displayNameZh,omitempty"`
	DisplayNameEN    string   `yaml:"displayNameEn,omitempty"`
	Domains          []string `yaml:"domains"`
	Schemes          []string `yaml:"schemes,omitempty"`
	HasApp           bool     `yaml:"hasApp,omitempty"`
	AndroidPackageID string   `yaml:"androidPackageId,omitempty"`

	WebSearchURL     string `yaml:"webSearchUrl"`
	UniversalLinkURL string `yaml:"universalLinkUrl,omitempty"`
	IOSSchemeURL     string `yaml:"iosSchemeUrl,omitempty"`
	AndroidSchemeURL string `yaml:"androidSchemeUrl,omitempty"`
}
