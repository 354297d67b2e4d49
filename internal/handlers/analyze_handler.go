package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"devpal/backend/internal/analysis"
	"devpal/backend/internal/analyzer"
	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
	"devpal/backend/internal/utils"
)

// AnalyzeHandler serves the code analysis endpoints.
type AnalyzeHandler struct {
	service *analyzer.Service
	logger  *zap.Logger
}

func NewAnalyzeHandler(service *analyzer.Service, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  logger,
	}
}

// ExplainHandler analyzes code and returns an explanation.
func (h *AnalyzeHandler) ExplainHandler(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, models.AnalysisExplain)
}

// OptimizeHandler analyzes code and returns an optimized version.
func (h *AnalyzeHandler) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, models.AnalysisOptimize)
}

// DocumentHandler analyzes code and returns a documented version.
func (h *AnalyzeHandler) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, models.AnalysisDocument)
}

// analyze forces the analysis type implied by the route. A type carried in
// the request body is ignored rather than rejected.
func (h *AnalyzeHandler) analyze(w http.ResponseWriter, r *http.Request, kind models.AnalysisType) {
	req := middleware.GetValidatedRequest[*models.AnalyzeRequest](r)
	req.AnalysisType = kind
	req.RequestID = ensureRequestID(req.RequestID)

	response := h.service.Analyze(r.Context(), req)
	if !response.Success {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "analysis_failed",
			Message: analysisFailureReason(response),
		})
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// DetectLanguageHandler runs the offline language heuristics; no provider
// call is involved.
func (h *AnalyzeHandler) DetectLanguageHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.DetectLanguageRequest](r)

	detected := analysis.DetectLanguage(req.Code)
	utils.JSON(w, http.StatusOK, models.DetectLanguageResponse{
		DetectedLanguage:  detected,
		Confidence:        analysis.DetectionConfidence,
		PossibleLanguages: analysis.Candidates(detected),
	})
}

// MetricsHandler computes offline code metrics.
func (h *AnalyzeHandler) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.MetricsRequest](r)

	metrics := analysis.ComputeMetrics(req.Code)
	utils.JSON(w, http.StatusOK, metrics)
}

// SupportedLanguagesHandler lists the languages the analyzer accepts.
func (h *AnalyzeHandler) SupportedLanguagesHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"languages": models.SupportedLanguagesList(),
	})
}

// AnalysisTypesHandler lists the available analysis operations.
func (h *AnalyzeHandler) AnalysisTypesHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"analysis_types": models.ValidAnalysisTypesList(),
		"detail_levels":  []string{"basic", "medium", "detailed"},
	})
}

func analysisFailureReason(response *models.AnalyzeResponse) string {
	if response.AnalysisMetadata != nil {
		if reason, ok := response.AnalysisMetadata["error"].(string); ok && reason != "" {
			return reason
		}
	}
	return "analysis failed"
}
