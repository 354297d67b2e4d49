package routers

import (
	"devpal/backend/internal/handlers"
	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"

	"github.com/go-chi/chi/v5"
)

func GenerateRoutes(router *chi.Mux, generateHandler *handlers.GenerateHandler) {
	router.Route("/api/v1/generate", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/code", generateHandler.CodeHandler)
		r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/code/async", generateHandler.AsyncHandler)
		r.Get("/status/{taskID}", generateHandler.StatusHandler)
		r.Get("/result/{taskID}", generateHandler.ResultHandler)
	})
}

func AnalyzeRoutes(router *chi.Mux, analyzeHandler *handlers.AnalyzeHandler) {
	router.Route("/api/v1/analyze", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CodeAnalysisRequest]()).Post("/code", analyzeHandler.CodeAnalysisHandler)
		r.With(middleware.ValidateRequest[*models.AnalyzeRequest]()).Post("/explain", analyzeHandler.ExplainHandler)
		r.With(middleware.ValidateRequest[*models.AnalyzeRequest]()).Post("/optimize", analyzeHandler.OptimizeHandler)
		r.With(middleware.ValidateRequest[*models.AnalyzeRequest]()).Post("/document", analyzeHandler.DocumentHandler)
		r.With(middleware.ValidateRequest[*models.DetectLanguageRequest]()).Post("/detect-language", analyzeHandler.DetectLanguageHandler)
		r.With(middleware.ValidateRequest[*models.MetricsRequest]()).Post("/metrics", analyzeHandler.MetricsHandler)
		r.Get("/supported-languages", analyzeHandler.SupportedLanguagesHandler)
		r.Get("/analysis-types", analyzeHandler.AnalysisTypesHandler)
	})
}

func ConfigRoutes(router *chi.Mux, configHandler *handlers.ConfigHandler) {
	router.Route("/api/v1/config", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.ConfigTestRequest]()).Post("/test", configHandler.TestHandler)
	})
}

func FeedbackRoutes(router *chi.Mux, feedbackHandler *handlers.FeedbackHandler) {
	router.With(middleware.ValidateRequest[*models.FeedbackRequest]()).Post("/api/v1/ai/feedback", feedbackHandler.SubmitHandler)
	router.Get("/api/v1/ai/feedback/stats", feedbackHandler.StatsHandler)
}
