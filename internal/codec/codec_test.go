package codec

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/outlink-dev/outlink/internal/catalog"
	"github.com/outlink-dev/outlink/internal/domain"
)

func builtinAllowlist() *Allowlist {
	return NewAllowlist(catalog.Builtin())
}

func sampleCandidate() domain.CandidateLink {
	return domain.CandidateLink{
		Provider: "jd",
		Title:    "羽绒服",
		Primary: domain.OutboundLink{
			Type: domain.LinkTypeApp,
			URL:  `openapp.jdmobile://virtual?params={"keyWord":"coat"}`,
		},
		Fallbacks: []domain.OutboundLink{
			{Type: domain.LinkTypeWeb, URL: "https://search.jd.com/Search?keyword=coat"},
			{Type: domain.LinkTypeStore, URL: "market://details?id=com.jingdong.app.mall", Label: "Google Play"},
		},
		Metadata: &domain.Metadata{
			Region:              "CN",
			Locale:              "zh-CN",
			Category:            "shopping",
			ProviderDisplayName: "京东",
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleCandidate()

	token, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, decErr := Decode(token, "zh-CN", builtinAllowlist())
	if decErr != nil {
		t.Fatalf("Decode failed: %+v", decErr)
	}

	if !reflect.DeepEqual(*decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *decoded, original)
	}
}

func TestEncodeIsURLSafe(t *testing.T) {
	token, err := Encode(sampleCandidate())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, c := range token {
		if c == '+' || c == '/' || c == '=' {
			t.Fatalf("token contains non-url-safe character %q: %s", c, token)
		}
	}
}

func TestDecodeToleratesForeignEncoders(t *testing.T) {
	data, _ := json.Marshal(sampleCandidate())

	// Standard alphabet with padding, as a non-Go encoder might produce.
	padded := base64.StdEncoding.EncodeToString(data)

	decoded, decErr := Decode(padded, "en", builtinAllowlist())
	if decErr != nil {
		t.Fatalf("Decode rejected padded standard-alphabet token: %+v", decErr)
	}
	if decoded.Provider != "jd" {
		t.Errorf("Provider = %q, want jd", decoded.Provider)
	}
}

func TestDecodeErrorOrdering(t *testing.T) {
	structurallyInvalid := func(mutate func(*domain.CandidateLink)) string {
		c := sampleCandidate()
		mutate(&c)
		token, _ := Encode(c)
		return token
	}

	tests := []struct {
		name     string
		raw      string
		wantCode ErrorCode
	}{
		{
			name:     "empty input",
			raw:      "",
			wantCode: ErrMissingParams,
		},
		{
			name:     "whitespace only",
			raw:      "   ",
			wantCode: ErrMissingParams,
		},
		{
			name:     "not base64",
			raw:      "!!!not-base64!!!",
			wantCode: ErrInvalidParams,
		},
		{
			name:     "base64 of non-JSON",
			raw:      base64.RawURLEncoding.EncodeToString([]byte("not json")),
			wantCode: ErrInvalidParams,
		},
		{
			name:     "missing provider",
			raw:      structurallyInvalid(func(c *domain.CandidateLink) { c.Provider = "" }),
			wantCode: ErrInvalidParams,
		},
		{
			name:     "missing title",
			raw:      structurallyInvalid(func(c *domain.CandidateLink) { c.Title = "" }),
			wantCode: ErrInvalidParams,
		},
		{
			name:     "missing primary url",
			raw:      structurallyInvalid(func(c *domain.CandidateLink) { c.Primary.URL = "" }),
			wantCode: ErrInvalidParams,
		},
		{
			name: "disallowed primary",
			raw: structurallyInvalid(func(c *domain.CandidateLink) {
				c.Primary = domain.OutboundLink{Type: domain.LinkTypeWeb, URL: "https://evil.example.com/"}
			}),
			wantCode: ErrTargetNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, decErr := Decode(tt.raw, "en", builtinAllowlist())
			if decErr == nil {
				t.Fatalf("Decode succeeded (%+v), want error %s", decoded, tt.wantCode)
			}
			if decErr.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", decErr.Code, tt.wantCode)
			}
		})
	}
}

// A tampered fallback is silently dropped while allowed fallbacks (the
// store mirror here) survive; the decode itself succeeds.
func TestDecodeFiltersDisallowedFallbacks(t *testing.T) {
	c := domain.CandidateLink{
		Provider: "youtube",
		Title:    "lofi beats",
		Primary: domain.OutboundLink{
			Type: domain.LinkTypeUniversalLink,
			URL:  "https://www.youtube.com/results?search_query=lofi",
		},
		Fallbacks: []domain.OutboundLink{
			{Type: domain.LinkTypeWeb, URL: "https://evil.example.com/phish"},
			{Type: domain.LinkTypeStore, URL: "https://apps.apple.com/search?term=YouTube"},
		},
	}
	token, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, decErr := Decode(token, "en", builtinAllowlist())
	if decErr != nil {
		t.Fatalf("Decode failed: %+v", decErr)
	}

	if len(decoded.Fallbacks) != 1 {
		t.Fatalf("got %d fallbacks, want 1: %v", len(decoded.Fallbacks), decoded.Fallbacks)
	}
	if decoded.Fallbacks[0].URL != "https://apps.apple.com/search?term=YouTube" {
		t.Errorf("surviving fallback = %q, want the App Store mirror", decoded.Fallbacks[0].URL)
	}
}

func TestDecodeErrorLocalization(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"zh-CN", "缺少链接参数"},
		{"zh", "缺少链接参数"},
		{"en-US", "missing link parameters"},
		{"", "missing link parameters"},
		{"fr", "missing link parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			_, decErr := Decode("", tt.locale, builtinAllowlist())
			if decErr == nil {
				t.Fatal("expected decode error")
			}
			if decErr.Message != tt.want {
				t.Errorf("message = %q, want %q", decErr.Message, tt.want)
			}
		})
	}
}
