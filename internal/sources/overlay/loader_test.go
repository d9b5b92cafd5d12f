package overlay

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `providers:
  - id: acme
    displayNameEn: Acme Shop
    displayNameZh: 极盟商城
    domains:
      - acme.example
      - m.acme.example
    schemes:
      - acmeshop
    hasApp: true
    androidPackageId: com.acme.shop
    webSearchUrl: "https://acme.example/search?q={query}"
    iosSchemeUrl: "acmeshop://search?keyword={query}"
    androidSchemeUrl: "acmeshop://search?keyword={query}"
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config.Providers) != 1 {
		t.Fatalf("Load() returned %d providers, want 1", len(config.Providers))
	}

	spec := config.Providers[0]
	if spec.ID != "acme" {
		t.Errorf("ID = %q, want acme", spec.ID)
	}
	if spec.DisplayNameZH != "极盟商城" {
		t.Errorf("DisplayNameZH = %q", spec.DisplayNameZH)
	}
	if !spec.HasApp || spec.AndroidPackageID != "com.acme.shop" {
		t.Errorf("app fields = (%v, %q)", spec.HasApp, spec.AndroidPackageID)
	}
	if len(spec.Domains) != 2 || spec.Domains[0] != "acme.example" {
		t.Errorf("Domains = %v", spec.Domains)
	}
	if spec.UniversalLinkURL != "" {
		t.Errorf("UniversalLinkURL = %q, want empty", spec.UniversalLinkURL)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/catalog.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	if err := os.WriteFile(yamlPath, []byte("providers: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with malformed YAML should return error")
	}
}
