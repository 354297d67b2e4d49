package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"devpal/backend/internal/feedback"
	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
	"devpal/backend/internal/utils"
)

// FeedbackHandler records thumbs up/down signals on earlier responses.
type FeedbackHandler struct {
	feedbackManager *feedback.FeedbackManager
	logger          *zap.Logger
}

func NewFeedbackHandler(feedbackManager *feedback.FeedbackManager, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackManager: feedbackManager,
		logger:          logger,
	}
}

// SubmitHandler stores one feedback record. The request must reference a
// request ID whose context is still cached; contexts expire, so late
// feedback is rejected with 404.
func (h *FeedbackHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if h.feedbackManager == nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "feedback_disabled",
			Message: "Feedback collection is not enabled",
		})
		return
	}

	req := middleware.GetValidatedRequest[*models.FeedbackRequest](r)

	if err := h.feedbackManager.SubmitFeedback(req.RequestID, *req.IsPositive); err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "request_context_not_found",
			Message: "Request context not found or expired",
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Feedback recorded",
	})
}

// StatsHandler reports aggregate feedback counters.
func (h *FeedbackHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if h.feedbackManager == nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "feedback_disabled",
			Message: "Feedback collection is not enabled",
		})
		return
	}

	stats, err := h.feedbackManager.GetFeedbackStats()
	if err != nil {
		h.logger.Error("failed to load feedback stats", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load feedback statistics",
		})
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}
