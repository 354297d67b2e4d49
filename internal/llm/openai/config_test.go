package openai

import "testing"

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("AI_MAX_TOKENS", "1024")

	cfg, err := NewConfig("deepseek")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("api key not read from environment")
	}
	if cfg.Model != "deepseek-coder" {
		t.Fatalf("expected default model, got %s", cfg.Model)
	}
	if cfg.BaseURL != "https://api.deepseek.com/v1" {
		t.Fatalf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.MaxTokens != 1024 {
		t.Fatalf("expected max tokens from environment, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 || cfg.TopP != 0.9 {
		t.Fatalf("expected default generation parameters, got %+v", cfg)
	}
}

func TestNewConfigMissingKey(t *testing.T) {
	t.Setenv("KIMI_API_KEY", "")

	if _, err := NewConfig("kimi"); err == nil {
		t.Fatal("expected error when API key is missing")
	}
}

func TestNewConfigUnknownProvider(t *testing.T) {
	if _, err := NewConfig("claude"); err == nil {
		t.Fatal("expected error for provider outside the compatible set")
	}
}

func TestBaseURLOrDefault(t *testing.T) {
	if got := BaseURLOrDefault("qwen", ""); got != "https://dashscope.aliyuncs.com/compatible-mode/v1" {
		t.Fatalf("unexpected default for qwen: %s", got)
	}
	if got := BaseURLOrDefault("qwen", "https://example.com/v1/"); got != "https://example.com/v1" {
		t.Fatalf("override not respected: %s", got)
	}
	if got := BaseURLOrDefault("unknown-vendor", ""); got != "https://api.openai.com/v1" {
		t.Fatalf("unknown vendor must fall back to the openai endpoint: %s", got)
	}
}

func TestCompatibleProviders(t *testing.T) {
	for _, provider := range CompatibleProviders() {
		if !Compatible(provider) {
			t.Errorf("provider %s listed but not compatible", provider)
		}
	}
	if Compatible("gemini") {
		t.Error("gemini must not be in the OpenAI-compatible set")
	}
}
