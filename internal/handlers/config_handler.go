package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"devpal/backend/internal/llm/openai"
	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
	"devpal/backend/internal/prompts"
	"devpal/backend/internal/utils"
)

// well-known endpoints for vendors that are testable through the
// OpenAI-compatible surface but are not generation providers here
var extraTestBaseURLs = map[string]string{
	"claude": "https://api.anthropic.com/v1",
	"gemini": "https://generativelanguage.googleapis.com/v1beta/openai",
}

// ConfigHandler verifies ad-hoc provider configurations before they are
// committed. Credentials arrive in the request body, are used for exactly
// one probe call, and are never stored or logged.
type ConfigHandler struct {
	promptManager prompts.PromptProvider
	logger        *zap.Logger
}

func NewConfigHandler(promptManager prompts.PromptProvider, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{
		promptManager: promptManager,
		logger:        logger,
	}
}

// TestHandler probes the configured vendor with a minimal prompt under the
// short connection-test timeout and reports a friendly verdict. The result
// is always 200; success lives in the body.
func (h *ConfigHandler) TestHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ConfigTestRequest](r)
	provider := strings.ToLower(strings.TrimSpace(req.Provider))

	baseURL := req.BaseURL
	if baseURL == "" {
		if url, ok := extraTestBaseURLs[provider]; ok {
			baseURL = url
		}
	}

	config := &openai.Config{
		Provider:    provider,
		APIKey:      req.APIKey,
		Model:       req.Model,
		BaseURL:     openai.BaseURLOrDefault(provider, baseURL),
		MaxTokens:   2000,
		Temperature: 0.7,
		TopP:        0.9,
	}
	if req.Temperature != nil {
		config.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		config.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		config.TopP = *req.TopP
	}

	prompt, err := h.promptManager.BuildPrompt("test_connection", "default", nil)
	if err != nil {
		h.logger.Error("failed to build connection test prompt", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to build the connection test prompt",
		})
		return
	}

	client := openai.NewClient(config)

	start := time.Now()
	_, err = client.TestConnection(r.Context(), prompt)
	elapsed := int(time.Since(start).Milliseconds())

	response := models.ConfigTestResponse{
		Provider:       provider,
		Model:          req.Model,
		ResponseTimeMS: &elapsed,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		h.logger.Warn("provider connection test failed",
			zap.String("provider", provider),
			zap.String("model", req.Model),
			zap.Error(err))
		response.Success = false
		response.Message = friendlyTestFailure(err)
	} else {
		response.Success = true
		response.Message = "Connection test successful"
	}

	utils.JSON(w, http.StatusOK, response)
}

// friendlyTestFailure turns a raw provider error into a hint the user can
// act on. Matching is on error text because the failures come from several
// layers (HTTP status mapping, net dialer, context deadline).
func friendlyTestFailure(err error) string {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "401") || strings.Contains(text, "unauthorized") || strings.Contains(text, "api key"):
		return "API key is invalid or unauthorized"
	case strings.Contains(text, "403") || strings.Contains(text, "forbidden"):
		return "Access forbidden, check the API key permissions"
	case strings.Contains(text, "404") || strings.Contains(text, "not found"):
		return "Endpoint not found, check the base URL and model name"
	case strings.Contains(text, "timeout") || strings.Contains(text, "deadline"):
		return "Connection timed out, the provider may be unreachable"
	case strings.Contains(text, "connection") || strings.Contains(text, "no such host"):
		return "Could not connect to the provider, check the base URL"
	default:
		return "Connection test failed: " + err.Error()
	}
}
