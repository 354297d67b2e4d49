// Package analyzer runs the code-analysis pipeline for the explain,
// optimize and document kinds.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"devpal/backend/internal/analysis"
	"devpal/backend/internal/feedback"
	"devpal/backend/internal/llm"
	"devpal/backend/internal/models"
	"devpal/backend/internal/parse"
	"devpal/backend/internal/prompts"
)

const analyzerVersion = "1.0.0"

// Service owns the analysis pipeline. Analyze never returns an error; every
// failure degrades to a success=false response with a readable reason.
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

// SetFeedbackManager enables feedback collection for analysis results.
func (s *Service) SetFeedbackManager(fm *feedback.FeedbackManager) {
	s.feedbackManager = fm
}

// Analyze runs the requested analysis kind. The request language is
// rewritten from auto to the detected value before any prompt is built.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) (resp *models.AnalyzeResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analysis pipeline panicked", zap.Any("panic", r), zap.String("request_id", req.RequestID))
			resp = s.failureResponse(req, fmt.Sprintf("Analysis failed: %v", r))
		}
	}()

	detected := analysis.DetectLanguage(req.Code)
	if req.Language == models.LanguageAuto {
		req.Language = detected
	}

	prompt, err := s.buildPrompt(req)
	if err != nil {
		s.logger.Error("failed to build prompt", zap.Error(err), zap.String("request_id", req.RequestID))
		return s.failureResponse(req, "Analysis failed: "+err.Error())
	}

	raw, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("provider call failed",
			zap.Error(err),
			zap.String("provider", s.provider.GetProviderName()),
			zap.String("request_id", req.RequestID))
		return s.failureResponse(req, userMessage(err))
	}

	// The score is always the local heuristic over the submitted code; a
	// score the model reports about its own output is not trusted.
	score := analysis.QualityScore(req.Code)

	resp = &models.AnalyzeResponse{
		Success:            true,
		DetectedLanguage:   detected,
		AnalysisType:       req.AnalysisType,
		GeneralSuggestions: analysis.GeneralSuggestions(req.Code, req.Language),
		CodeQualityScore:   &score,
		AnalysisMetadata:   s.metadata(),
		RequestID:          req.RequestID,
	}

	var outcome parse.Outcome
	switch req.AnalysisType {
	case models.AnalysisExplain:
		resp.Explanation, outcome = parse.Explanation(raw)
	case models.AnalysisOptimize:
		resp.Optimization, outcome = parse.Optimization(raw, req.Code)
	case models.AnalysisDocument:
		resp.Documentation, outcome = parse.Documentation(raw, req.Code)
	default:
		return s.failureResponse(req, "Analysis failed: unsupported analysis type "+string(req.AnalysisType))
	}

	s.logger.Info("analysis completed",
		zap.String("request_id", req.RequestID),
		zap.String("analysis_type", string(req.AnalysisType)),
		zap.String("detected_language", string(detected)),
		zap.String("parse_outcome", outcome.String()))

	if s.feedbackManager != nil {
		s.feedbackManager.StoreRequestContext(&models.RequestContext{
			RequestID:   req.RequestID,
			RequestType: string(req.AnalysisType),
			Prompt:      prompt,
			Response:    raw,
			Provider:    s.provider.GetProviderName(),
			Timestamp:   time.Now(),
		})
	}

	return resp
}

func (s *Service) buildPrompt(req *models.AnalyzeRequest) (string, error) {
	contextText := req.Context
	if contextText == "" {
		switch req.AnalysisType {
		case models.AnalysisExplain:
			contextText = "Perform a detailed quality review of the code"
		default:
			contextText = "No special context"
		}
	}

	focusAreas := strings.Join(req.FocusAreas, ", ")
	if focusAreas == "" {
		focusAreas = "performance, readability, maintainability"
	}

	variant := "default"
	if req.AnalysisType == models.AnalysisExplain {
		variant = req.DetailLevel
	}

	return s.promptManager.BuildPrompt(string(req.AnalysisType), variant, map[string]string{
		"Language":   string(req.Language),
		"Code":       req.Code,
		"Context":    contextText,
		"FocusAreas": focusAreas,
	})
}

func (s *Service) metadata() map[string]any {
	return map[string]any{
		"timestamp":        time.Now().Format(time.RFC3339),
		"analyzer_version": analyzerVersion,
		"ai_provider":      s.provider.GetProviderName(),
	}
}

func (s *Service) failureResponse(req *models.AnalyzeRequest, reason string) *models.AnalyzeResponse {
	return &models.AnalyzeResponse{
		Success:          false,
		DetectedLanguage: models.LanguageAuto,
		AnalysisType:     req.AnalysisType,
		GeneralSuggestions: []string{
			reason,
			"Check the code format and your network connection",
		},
		AnalysisMetadata: map[string]any{
			"error":     reason,
			"timestamp": time.Now().Format(time.RFC3339),
		},
		RequestID: req.RequestID,
	}
}

func userMessage(err error) string {
	if perr, ok := err.(*llm.ProviderError); ok {
		return perr.Message
	}
	return "Analysis failed: " + err.Error()
}
