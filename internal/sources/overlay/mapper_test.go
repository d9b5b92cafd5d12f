package overlay

import (
	"strings"
	"testing"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

func validSpec() ProviderSpec {
	return ProviderSpec{
		ID:               "acme",
		DisplayNameEN:    "Acme Shop",
		DisplayNameZH:    "极盟商城",
		Domains:          []string{"acme.example"},
		Schemes:          []string{"acmeshop"},
		HasApp:           true,
		AndroidPackageID: "com.acme.shop",
		WebSearchURL:     "https://acme.example/search?q={query}",
		IOSSchemeURL:     "acmeshop://search?keyword={query}",
	}
}

func TestMapProviders(t *testing.T) {
	mapper := NewMapper()

	defs, err := mapper.MapProviders(&Config{Providers: []ProviderSpec{validSpec()}})
	if err != nil {
		t.Fatalf("MapProviders() error = %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("MapProviders() returned %d definitions, want 1", len(defs))
	}

	def := defs[0]
	if def.ID != "acme" {
		t.Errorf("ID = %q, want acme", def.ID)
	}
	if def.DisplayName.For("zh-CN") != "极盟商城" || def.DisplayName.For("en") != "Acme Shop" {
		t.Errorf("display names = (%q, %q)", def.DisplayName.For("zh-CN"), def.DisplayName.For("en"))
	}
	if def.WebLink == nil {
		t.Fatal("WebLink builder missing")
	}
	if def.IOSScheme == nil {
		t.Error("IOSScheme builder missing")
	}
	if def.UniversalLink != nil || def.AndroidScheme != nil {
		t.Error("builders created for absent URL templates")
	}
}

func TestMapProvidersErrors(t *testing.T) {
	noID := validSpec()
	noID.ID = ""
	noWeb := validSpec()
	noWeb.WebSearchURL = ""

	tests := []struct {
		name   string
		config *Config
	}{
		{"nil config", nil},
		{"no providers", &Config{}},
		{"missing id", &Config{Providers: []ProviderSpec{noID}}},
		{"missing webSearchUrl", &Config{Providers: []ProviderSpec{noWeb}}},
	}

	mapper := NewMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mapper.MapProviders(tt.config); err == nil {
				t.Error("MapProviders() should return error")
			}
		})
	}
}

func TestTemplateBuilderEncodesQuery(t *testing.T) {
	build := templateBuilder("https://acme.example/search?q={query}")

	got := build(domain.LinkContext{Query: "手机 壳&型号"})
	if strings.Contains(got, " ") || strings.Contains(got, "手机") {
		t.Errorf("query text not URL-encoded: %q", got)
	}
	if !strings.HasPrefix(got, "https://acme.example/search?q=") {
		t.Errorf("template structure lost: %q", got)
	}
}

func TestTemplateBuilderFallsBackToTitle(t *testing.T) {
	build := templateBuilder("acmeshop://search?keyword={query}")

	got := build(domain.LinkContext{Title: "coat"})
	if got != "acmeshop://search?keyword=coat" {
		t.Errorf("builder = %q", got)
	}
}

func TestMergeWithBuiltin(t *testing.T) {
	defs := []*catalog.ProviderDefinition{
		{
			ID:          "acme",
			DisplayName: catalog.DisplayName{EN: "Acme Shop"},
			WebLink:     templateBuilder("https://acme.example/search?q={query}"),
		},
		{
			// Overrides the builtin entry with the same id.
			ID:          "jd",
			DisplayName: catalog.DisplayName{EN: "JD Override"},
			WebLink:     templateBuilder("https://jd.example/search?q={query}"),
		},
	}

	reg, err := MergeWithBuiltin(defs)
	if err != nil {
		t.Fatalf("MergeWithBuiltin() error = %v", err)
	}

	if reg.Count() != catalog.Builtin().Count()+1 {
		t.Errorf("Count = %d, want builtin+1 = %d", reg.Count(), catalog.Builtin().Count()+1)
	}

	if _, ok := reg.Get("acme"); !ok {
		t.Error("merged registry missing the new overlay provider")
	}

	jd, ok := reg.Get("jd")
	if !ok {
		t.Fatal("merged registry missing jd")
	}
	if jd.DisplayName.EN != "JD Override" {
		t.Errorf("overlay did not win on id collision: %q", jd.DisplayName.EN)
	}
}

func TestMergeWithBuiltinEmptyOverlay(t *testing.T) {
	reg, err := MergeWithBuiltin(nil)
	if err != nil {
		t.Fatalf("MergeWithBuiltin(nil) error = %v", err)
	}
	if reg.Count() != catalog.Builtin().Count() {
		t.Errorf("Count = %d, want builtin size %d", reg.Count(), catalog.Builtin().Count())
	}
}
