package codec

import "testing"

func TestValidateReturnTo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"relative path", "/category/food?x=1", "/category/food?x=1"},
		{"root", "/", "/"},
		{"path with fragment", "/results#top", "/results#top"},
		{"protocol-relative url", "//evil.com", ""},
		{"protocol-relative with path", "//evil.com/path", ""},
		{"absolute http url", "https://evil.com/", ""},
		{"javascript scheme", "javascript:alert(1)", ""},
		{"no leading slash", "category/food", ""},
		{"empty", "", ""},
		{"backslash prefix", `\evil.com`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateReturnTo(tt.input); got != tt.want {
				t.Errorf("ValidateReturnTo(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
