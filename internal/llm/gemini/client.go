package gemini

import (
	"context"
	"time"

	"google.golang.org/genai"

	"devpal/backend/internal/llm"
)

// testConnectionTimeout keeps connectivity probes fast even though the SDK
// has no per-call token cap knob comparable to the HTTP providers.
const testConnectionTimeout = 10 * time.Second

// Client adapts the Gemini SDK to the raw-text Provider contract.
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// Complete sends the prompt and returns the raw response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate content: " + err.Error(),
			Err:      err,
		}
	}

	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidResponse,
			Message:  "Empty response generated",
		}
	}

	return text, nil
}

// TestConnection runs Complete under the short probe timeout.
func (c *Client) TestConnection(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, testConnectionTimeout)
	defer cancel()
	return c.Complete(ctx, prompt)
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
