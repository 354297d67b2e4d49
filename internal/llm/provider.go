package llm

import "context"

// Provider is the capability every LLM vendor integration exposes: turn a
// prompt into raw response text. Parsing that text into typed results is the
// normalizer's job, never the provider's.
type Provider interface {
	// Complete sends the prompt and returns the model's raw output text.
	Complete(ctx context.Context, prompt string) (string, error)
	// TestConnection is the fail-fast variant used by config checks. It uses
	// a short timeout and a capped token budget so a bad credential or dead
	// endpoint surfaces in seconds, not minutes.
	TestConnection(ctx context.Context, prompt string) (string, error)
	GetProviderName() string
}

// ProviderError represents a classified failure from an LLM provider.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes, shared across providers
const (
	ErrCodeAPIKey          = "invalid_api_key"
	ErrCodeRateLimit       = "rate_limit_exceeded"
	ErrCodeServiceDown     = "service_unavailable"
	ErrCodeInvalidInput    = "invalid_input"
	ErrCodeInvalidResponse = "invalid_response"
	ErrCodeTimeout         = "timeout"
)
