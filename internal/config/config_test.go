package config

import "testing"

func TestLoadConfigDefault(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "doubao" {
		t.Fatalf("expected default provider doubao, got %s", cfg.Provider)
	}
}

func TestLoadConfigExplicitProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Fatalf("expected gemini, got %s", cfg.Provider)
	}
}

func TestLoadConfigUnsupportedProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "llamacpp")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestSupportedProviders(t *testing.T) {
	for _, provider := range SupportedProviders() {
		if !supportedProviders[provider] {
			t.Errorf("provider %s listed but not accepted", provider)
		}
	}
}
