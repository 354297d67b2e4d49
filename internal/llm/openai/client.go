package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devpal/backend/internal/llm"
)

const (
	// Generation calls tolerate slow inference; connectivity tests must
	// fail fast. The asymmetry is intentional.
	generateTimeout = 120 * time.Second
	testTimeout     = 10 * time.Second

	// token cap applied to connectivity-test calls
	testMaxTokens = 100
)

// Client talks to any vendor exposing an OpenAI-style chat-completions
// endpoint. One implementation serves doubao, kimi, deepseek, openai, zhipu
// and qwen; which one is a matter of Config, not code.
type Client struct {
	config     *Config
	httpClient *http.Client
	testClient *http.Client
}

// NewClient builds a Client for the configured vendor.
func NewClient(config *Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: generateTimeout},
		testClient: &http.Client{Timeout: testTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Complete sends the prompt with the full generation budget.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.post(ctx, c.httpClient, prompt, c.config.MaxTokens)
}

// TestConnection sends the prompt with the short timeout and a capped token
// budget.
func (c *Client) TestConnection(ctx context.Context, prompt string) (string, error) {
	maxTokens := c.config.MaxTokens
	if maxTokens > testMaxTokens || maxTokens <= 0 {
		maxTokens = testMaxTokens
	}
	return c.post(ctx, c.testClient, prompt, maxTokens)
}

func (c *Client) GetProviderName() string {
	return c.config.Provider
}

func (c *Client) post(ctx context.Context, httpClient *http.Client, prompt string, maxTokens int) (string, error) {
	body := chatRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: c.config.Temperature,
		TopP:        c.config.TopP,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to encode request body",
			Err:      err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build request",
			Err:      err,
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeServiceDown,
			Message:  "Request failed: " + err.Error(),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to read response body",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Provider returned a non-JSON response body",
			Err:      err,
		}
	}

	// choices[0].message.content is assumed present on 200s; its absence is
	// a fatal parse error, not something the fallback normalizer sees.
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Provider response is missing choices[0].message.content",
		}
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) statusError(status int, raw []byte) error {
	detail := ""
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
		detail = parsed.Error.Message
	}
	if detail == "" {
		detail = string(raw)
		if len(detail) > 200 {
			detail = detail[:200]
		}
	}

	// Codes and messages are chosen so the retry layer's substring
	// classification sees what it expects.
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeAPIKey,
			Message:  fmt.Sprintf("unauthorized (HTTP %d): %s", status, detail),
		}
	case status == http.StatusTooManyRequests:
		return &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeRateLimit,
			Message:  fmt.Sprintf("rate limit exceeded (HTTP %d): %s", status, detail),
		}
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeTimeout,
			Message:  fmt.Sprintf("upstream timeout (HTTP %d): %s", status, detail),
		}
	default:
		return &llm.ProviderError{
			Provider: c.config.Provider,
			Code:     llm.ErrCodeServiceDown,
			Message:  fmt.Sprintf("unexpected status %d: %s", status, detail),
		}
	}
}
