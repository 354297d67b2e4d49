package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// retryableKeywords marks an error transient when its text contains any of
// these substrings. Matching vendor error text is brittle (a vendor changing
// its message format silently changes classification), but it never retries
// authentication or validation failures, which cannot succeed on a second
// attempt.
var retryableKeywords = []string{
	"timeout", "connection", "network", "temporary", "rate limit",
}

// credentialKeywords identifies failures that must surface a
// check-your-credentials message and must never be retried.
var credentialKeywords = []string{
	"401", "unauthorized", "invalid api key", "invalid_api_key", "forbidden", "403",
}

// IsRetryable reports whether the error looks transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, keyword := range retryableKeywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

func isCredentialError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, keyword := range credentialKeywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// RetryPolicy bounds the retry loop around provider calls.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy matches the service defaults: three attempts with a
// linear 2s, 4s backoff between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

type retryProvider struct {
	inner  Provider
	policy RetryPolicy
}

// WithRetry wraps a provider so Complete is attempted up to
// policy.MaxAttempts times. Backoff grows linearly with the attempt number
// and is applied only between attempts, never after the last one.
// TestConnection is passed through untouched: connectivity probes must fail
// fast. On exhaustion the last error is re-raised as a classified
// ProviderError whose Message is safe to show a caller; the low-level error
// stays attached for logs.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &retryProvider{inner: p, policy: policy}
}

func (r *retryProvider) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		text, err := r.inner.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < r.policy.MaxAttempts && IsRetryable(err) {
			select {
			case <-time.After(r.policy.BaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return "", r.classify(ctx.Err(), attempt)
			}
			continue
		}

		return "", r.classify(err, attempt)
	}

	return "", r.classify(lastErr, r.policy.MaxAttempts)
}

func (r *retryProvider) TestConnection(ctx context.Context, prompt string) (string, error) {
	return r.inner.TestConnection(ctx, prompt)
}

func (r *retryProvider) GetProviderName() string {
	return r.inner.GetProviderName()
}

// classify converts the final low-level error into a user-facing
// ProviderError that distinguishes timeout, rate-limit and credential
// failures from generic ones.
func (r *retryProvider) classify(err error, attempts int) error {
	name := r.inner.GetProviderName()
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return &ProviderError{
			Provider: name,
			Code:     ErrCodeTimeout,
			Message:  fmt.Sprintf("AI service timed out, please retry later. Attempted %d time(s).", attempts),
			Err:      err,
		}
	case strings.Contains(msg, "rate limit"):
		return &ProviderError{
			Provider: name,
			Code:     ErrCodeRateLimit,
			Message:  "API rate limit reached, please retry later.",
			Err:      err,
		}
	case isCredentialError(err):
		return &ProviderError{
			Provider: name,
			Code:     ErrCodeAPIKey,
			Message:  "Authentication failed, please check your API credentials.",
			Err:      err,
		}
	default:
		return &ProviderError{
			Provider: name,
			Code:     ErrCodeServiceDown,
			Message:  "Code generation failed: " + err.Error(),
			Err:      err,
		}
	}
}
