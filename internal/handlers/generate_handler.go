package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"devpal/backend/internal/generator"
	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
	"devpal/backend/internal/tasks"
	"devpal/backend/internal/utils"
)

// GenerateHandler serves the synchronous and asynchronous generation
// endpoints.
type GenerateHandler struct {
	service     *generator.Service
	taskManager *tasks.Manager
	logger      *zap.Logger
}

func NewGenerateHandler(service *generator.Service, taskManager *tasks.Manager, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		service:     service,
		taskManager: taskManager,
		logger:      logger,
	}
}

// CodeHandler generates code synchronously.
func (h *GenerateHandler) CodeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	response := h.service.Generate(r.Context(), req)
	if !response.Success {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "generation_failed",
			Message: response.Explanation,
		})
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// AsyncHandler submits a generation task and returns its initial status.
func (h *GenerateHandler) AsyncHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateRequest](r)

	status := h.taskManager.Submit(req)
	utils.JSON(w, http.StatusAccepted, status)
}

// StatusHandler reports the lifecycle state of a task.
func (h *GenerateHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	status, err := h.taskManager.Status(taskID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "task_not_found",
			Message: "Task does not exist",
		})
		return
	}

	utils.JSON(w, http.StatusOK, status)
}

// ResultHandler returns the final result of a completed task.
func (h *GenerateHandler) ResultHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	result, err := h.taskManager.Result(taskID)
	if err != nil {
		var notCompleted *tasks.ErrNotCompleted
		switch {
		case errors.Is(err, tasks.ErrNotFound):
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "task_not_found",
				Message: "Task does not exist",
			})
		case errors.As(err, &notCompleted):
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "task_not_completed",
				Message: notCompleted.Error(),
			})
		default:
			utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Code:    "generation_failed",
				Message: err.Error(),
			})
		}
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID generates a request ID if one is not provided
func ensureRequestID(requestID string) string {
	if requestID == "" {
		return generateRequestID()
	}
	return requestID
}
