package config

import (
	"fmt"
	"os"
	"strings"
)

// providers the service can be pointed at via AI_PROVIDER
var supportedProviders = map[string]bool{
	"doubao":   true,
	"kimi":     true,
	"deepseek": true,
	"openai":   true,
	"zhipu":    true,
	"qwen":     true,
	"gemini":   true,
}

// app config, mostly AI provider related. Loaded once at startup and
// read-only afterwards; provider packages read their own credential keys.
type Config struct {
	Provider string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider: getEnvOrDefault("AI_PROVIDER", "doubao"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if !supportedProviders[config.Provider] {
		return fmt.Errorf("unsupported AI provider: %s. Supported: %s",
			config.Provider, strings.Join(SupportedProviders(), ", "))
	}
	// credential validation is handled by the provider's own NewConfig
	return nil
}

// SupportedProviders lists the providers AI_PROVIDER accepts.
func SupportedProviders() []string {
	return []string{"doubao", "kimi", "deepseek", "openai", "zhipu", "qwen", "gemini"}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
