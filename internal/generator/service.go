// Package generator runs the code-generation pipeline: prompt build,
// provider call (behind the retry policy), response normalization.
package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"devpal/backend/internal/feedback"
	"devpal/backend/internal/llm"
	"devpal/backend/internal/models"
	"devpal/backend/internal/parse"
	"devpal/backend/internal/prompts"
)

// Service owns the generation pipeline. Generate never returns an error:
// every failure mode degrades to a success=false response with a
// human-readable explanation and default payload fields.
type Service struct {
	provider        llm.Provider
	promptManager   prompts.PromptProvider
	logger          *zap.Logger
	feedbackManager *feedback.FeedbackManager
}

func NewService(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Service {
	return &Service{
		provider:      provider,
		promptManager: promptManager,
		logger:        logger,
	}
}

// SetFeedbackManager enables feedback collection for generated results.
func (s *Service) SetFeedbackManager(fm *feedback.FeedbackManager) {
	s.feedbackManager = fm
}

// Generate turns a request into a normalized response.
func (s *Service) Generate(ctx context.Context, req *models.GenerateRequest) (resp *models.GenerateResponse) {
	// The fallback path scans arbitrary model output; a panic there must
	// become a failure result, not a crash.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generation pipeline panicked", zap.Any("panic", r), zap.String("request_id", req.RequestID))
			resp = failureResponse(req, fmt.Sprintf("Response parsing failed: %v", r))
		}
	}()

	prompt, err := s.buildPrompt(req)
	if err != nil {
		s.logger.Error("failed to build prompt", zap.Error(err), zap.String("request_id", req.RequestID))
		return failureResponse(req, "Code generation failed: "+err.Error())
	}

	raw, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("provider call failed",
			zap.Error(err),
			zap.String("provider", s.provider.GetProviderName()),
			zap.String("request_id", req.RequestID))
		return failureResponse(req, userMessage(err))
	}

	resp, outcome := parse.Generation(raw, req)
	resp.RequestID = req.RequestID

	s.logger.Info("code generated",
		zap.String("request_id", req.RequestID),
		zap.String("provider", s.provider.GetProviderName()),
		zap.String("parse_outcome", outcome.String()))

	if s.feedbackManager != nil {
		s.feedbackManager.StoreRequestContext(&models.RequestContext{
			RequestID:   req.RequestID,
			RequestType: "generate",
			Prompt:      prompt,
			Response:    raw,
			Provider:    s.provider.GetProviderName(),
			Timestamp:   time.Now(),
		})
	}

	return resp
}

func (s *Service) buildPrompt(req *models.GenerateRequest) (string, error) {
	includeComments := "no"
	if req.WantsComments() {
		includeComments = "yes"
	}
	requirements := req.AdditionalRequirements
	if requirements == "" {
		requirements = "None"
	}

	return s.promptManager.BuildPrompt("generate", "default", map[string]string{
		"Description":            req.Description,
		"CodeStyle":              req.CodeStyle,
		"IncludeComments":        includeComments,
		"AdditionalRequirements": requirements,
	})
}

// userMessage prefers the classified provider message over raw error text.
func userMessage(err error) string {
	if perr, ok := err.(*llm.ProviderError); ok {
		return perr.Message
	}
	return "Code generation failed: " + err.Error()
}

func failureResponse(req *models.GenerateRequest, explanation string) *models.GenerateResponse {
	return &models.GenerateResponse{
		Success:       false,
		GeneratedCode: "",
		Explanation:   explanation,
		Suggestions: []string{
			"Check your network connection and API configuration",
			"Try simplifying the request description",
		},
		RequestID: req.RequestID,
	}
}
