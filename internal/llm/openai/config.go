package openai

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// defaultBaseURLs maps each OpenAI-compatible vendor to its completions
// endpoint base. Vendor differences are data here, not per-vendor code
// paths: every entry speaks the same wire protocol.
var defaultBaseURLs = map[string]string{
	"doubao":   "https://ark.cn-beijing.volces.com/api/v3",
	"kimi":     "https://api.moonshot.cn/v1",
	"deepseek": "https://api.deepseek.com/v1",
	"openai":   "https://api.openai.com/v1",
	"zhipu":    "https://open.bigmodel.cn/api/paas/v4",
	"qwen":     "https://dashscope.aliyuncs.com/compatible-mode/v1",
}

// defaultModels holds a sane model per vendor when none is configured.
var defaultModels = map[string]string{
	"doubao":   "doubao-seed-1-6-thinking-250715",
	"kimi":     "moonshot-v1-8k",
	"deepseek": "deepseek-coder",
	"openai":   "gpt-4o-mini",
	"zhipu":    "glm-4",
	"qwen":     "qwen-turbo",
}

// Config holds everything needed to talk to one OpenAI-compatible vendor.
// Loaded once at startup and treated as read-only afterwards.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Compatible reports whether the named vendor speaks the OpenAI wire format.
func Compatible(provider string) bool {
	_, ok := defaultBaseURLs[provider]
	return ok
}

// CompatibleProviders lists the vendors this package can reach.
func CompatibleProviders() []string {
	return []string{"doubao", "kimi", "deepseek", "openai", "zhipu", "qwen"}
}

// NewConfig builds the configuration for one vendor from its environment
// keys, e.g. DOUBAO_API_KEY, DOUBAO_MODEL, DOUBAO_BASE_URL. Generation
// parameters come from the shared AI_MAX_TOKENS / AI_TEMPERATURE / AI_TOP_P
// keys.
func NewConfig(provider string) (*Config, error) {
	if !Compatible(provider) {
		return nil, fmt.Errorf("provider %s is not OpenAI-compatible", provider)
	}

	prefix := strings.ToUpper(provider)
	apiKey := os.Getenv(prefix + "_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s_API_KEY environment variable is required", prefix)
	}

	model := os.Getenv(prefix + "_MODEL")
	if model == "" {
		model = defaultModels[provider]
	}

	baseURL := os.Getenv(prefix + "_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURLs[provider]
	}

	return &Config{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       model,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		MaxTokens:   envInt("AI_MAX_TOKENS", 2000),
		Temperature: envFloat("AI_TEMPERATURE", 0.7),
		TopP:        envFloat("AI_TOP_P", 0.9),
	}, nil
}

// BaseURLOrDefault resolves an explicit override or falls back to the
// vendor's well-known endpoint (openai's when the vendor is unknown).
func BaseURLOrDefault(provider, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if url, ok := defaultBaseURLs[provider]; ok {
		return url
	}
	return defaultBaseURLs["openai"]
}

func envInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
