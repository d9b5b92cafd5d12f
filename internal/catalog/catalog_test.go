package catalog

import (
	"strings"
	"testing"

	"github.com/outlink-dev/outlink/internal/domain"
)

func TestDisplayNameFor(t *testing.T) {
	tests := []struct {
		name   string
		dn     DisplayName
		locale string
		want   string
	}{
		{
			name:   "chinese locale with chinese name",
			dn:     DisplayName{ZH: "京东", EN: "JD.com"},
			locale: "zh-CN",
			want:   "京东",
		},
		{
			name:   "english locale",
			dn:     DisplayName{ZH: "京东", EN: "JD.com"},
			locale: "en-US",
			want:   "JD.com",
		},
		{
			name:   "chinese locale without chinese name falls back to english",
			dn:     DisplayName{EN: "Spotify"},
			locale: "zh",
			want:   "Spotify",
		},
		{
			name:   "empty locale uses english",
			dn:     DisplayName{ZH: "美团", EN: "Meituan"},
			locale: "",
			want:   "Meituan",
		},
		{
			name:   "chinese only name",
			dn:     DisplayName{ZH: "百度"},
			locale: "en",
			want:   "百度",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dn.For(tt.locale); got != tt.want {
				t.Errorf("For(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestNewRegistryValidation(t *testing.T) {
	web := func(ctx domain.LinkContext) string { return "https://example.com" }

	tests := []struct {
		name    string
		defs    []*ProviderDefinition
		wantErr bool
	}{
		{
			name: "valid definitions",
			defs: []*ProviderDefinition{
				{ID: "a", WebLink: web},
				{ID: "b", WebLink: web},
			},
			wantErr: false,
		},
		{
			name:    "missing id",
			defs:    []*ProviderDefinition{{WebLink: web}},
			wantErr: true,
		},
		{
			name:    "missing web link",
			defs:    []*ProviderDefinition{{ID: "a"}},
			wantErr: true,
		},
		{
			name: "duplicate id",
			defs: []*ProviderDefinition{
				{ID: "a", WebLink: web},
				{ID: "a", WebLink: web},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistryDomainsAndSchemes(t *testing.T) {
	web := func(ctx domain.LinkContext) string { return "https://example.com" }
	reg := MustNewRegistry([]*ProviderDefinition{
		{ID: "a", Domains: []string{"B.com", "a.com"}, Schemes: []string{"MyApp"}, WebLink: web},
		{ID: "b", Domains: []string{"a.com"}, WebLink: web},
	})

	domains := reg.Domains()
	if len(domains) != 2 || domains[0] != "a.com" || domains[1] != "b.com" {
		t.Errorf("Domains() = %v, want [a.com b.com]", domains)
	}

	schemes := reg.Schemes()
	if len(schemes) != 1 || schemes[0] != "myapp" {
		t.Errorf("Schemes() = %v, want [myapp]", schemes)
	}
}

func TestBuiltinCatalog(t *testing.T) {
	reg := Builtin()

	if reg.Count() < 25 {
		t.Errorf("builtin catalog has %d providers, want at least 25", reg.Count())
	}

	// Core providers every deployment depends on.
	for _, id := range []string{"baidu", "google", "taobao", "jd", "meituan", "youtube", "tiktok", "amazon"} {
		if _, ok := reg.Get(id); !ok {
			t.Errorf("builtin catalog missing provider %q", id)
		}
	}

	// Search defaults have no app flow.
	google, _ := reg.Get("google")
	if google.HasApp {
		t.Error("google should not be app-capable")
	}
}

func TestBuildersEncodeQuery(t *testing.T) {
	ctx := domain.LinkContext{Query: "手机 壳&型号"}

	for _, def := range Builtin().All() {
		builders := map[string]Builder{
			"web":       def.WebLink,
			"universal": def.UniversalLink,
			"ios":       def.IOSScheme,
			"android":   def.AndroidScheme,
		}
		for name, b := range builders {
			if b == nil {
				continue
			}
			u := b(ctx)
			if strings.Contains(u, " ") {
				t.Errorf("%s %s builder emitted raw space: %q", def.ID, name, u)
			}
			if strings.Contains(u, "&型号") {
				t.Errorf("%s %s builder did not encode query: %q", def.ID, name, u)
			}
		}
	}
}

func TestJDSchemeCarriesKeyword(t *testing.T) {
	jd, ok := Builtin().Get("jd")
	if !ok {
		t.Fatal("jd not in builtin catalog")
	}
	u := jd.IOSScheme(domain.LinkContext{Query: "laptop"})
	if !strings.HasPrefix(u, "openapp.jdmobile://") {
		t.Errorf("jd iOS scheme = %q, want openapp.jdmobile:// prefix", u)
	}
	if !strings.Contains(u, "laptop") {
		t.Errorf("jd iOS scheme %q does not carry the keyword", u)
	}
}
