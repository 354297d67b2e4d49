package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devpal/backend/internal/models"
)

// ErrNotFound is returned when a task ID is unknown.
var ErrNotFound = errors.New("task not found")

// ErrNotCompleted is returned when a result is requested for a task that
// has not reached a terminal state. Asking early is a caller error, not
// something to silently tolerate.
type ErrNotCompleted struct {
	Status Status
}

func (e *ErrNotCompleted) Error() string {
	return fmt.Sprintf("task not completed yet, current status: %s", e.Status)
}

// Generator is the piece of the generation service the manager needs.
type Generator interface {
	Generate(ctx context.Context, req *models.GenerateRequest) *models.GenerateResponse
}

// estimate handed to callers at submission time, in seconds
const initialEstimate = 15

// Manager orchestrates asynchronous generation tasks over an injected
// Store. There is no cancellation: once a provider call is in flight it
// runs to completion or failure even if every caller has moved on.
type Manager struct {
	store     Store
	generator Generator
	logger    *zap.Logger
}

func NewManager(store Store, generator Generator, logger *zap.Logger) *Manager {
	return &Manager{
		store:     store,
		generator: generator,
		logger:    logger,
	}
}

// Submit registers a task and starts processing it in the background.
func (m *Manager) Submit(req *models.GenerateRequest) *models.GenerationStatus {
	taskID := uuid.New().String()
	if req.RequestID == "" {
		req.RequestID = taskID
	}

	record := &Record{
		ID:        taskID,
		Status:    StatusPending,
		Progress:  0,
		Message:   "Task created, waiting to be processed",
		CreatedAt: time.Now(),
	}
	m.store.Create(record)

	go m.process(taskID, req)

	estimate := initialEstimate
	return &models.GenerationStatus{
		RequestID:     taskID,
		Status:        string(StatusPending),
		Progress:      0,
		EstimatedTime: &estimate,
		Message:       record.Message,
	}
}

// Status reports the task's lifecycle state.
func (m *Manager) Status(taskID string) (*models.GenerationStatus, error) {
	record, exists := m.store.Get(taskID)
	if !exists {
		return nil, ErrNotFound
	}

	return &models.GenerationStatus{
		RequestID: taskID,
		Status:    string(record.Status),
		Progress:  record.Progress,
		Message:   record.Message,
	}, nil
}

// Result returns the final response of a completed task. Unknown IDs are
// ErrNotFound; non-terminal tasks are *ErrNotCompleted; failed tasks return
// the recorded error text.
func (m *Manager) Result(taskID string) (*models.GenerateResponse, error) {
	record, exists := m.store.Get(taskID)
	if !exists {
		return nil, ErrNotFound
	}
	if !record.Status.Terminal() {
		return nil, &ErrNotCompleted{Status: record.Status}
	}
	if record.Status == StatusFailed {
		return nil, errors.New(record.Error)
	}
	return record.Result, nil
}

// process drives one task through its lifecycle. Timeouts are enforced at
// the provider HTTP layer, not here.
func (m *Manager) process(taskID string, req *models.GenerateRequest) {
	record, exists := m.store.Get(taskID)
	if !exists {
		return
	}

	record.Status = StatusProcessing
	record.Progress = 10
	record.Message = "Analyzing the request..."
	m.store.Update(record)

	defer func() {
		if r := recover(); r != nil {
			m.fail(taskID, fmt.Sprintf("generation panicked: %v", r))
		}
	}()

	result := m.generator.Generate(context.Background(), req)

	record, exists = m.store.Get(taskID)
	if !exists || record.Status.Terminal() {
		return
	}

	if !result.Success {
		m.logger.Warn("async generation failed", zap.String("task_id", taskID), zap.String("reason", result.Explanation))
		m.fail(taskID, result.Explanation)
		return
	}

	record.Status = StatusCompleted
	record.Progress = 100
	record.Message = "Code generation completed"
	record.Result = result
	m.store.Update(record)

	m.logger.Info("async generation completed", zap.String("task_id", taskID))
}

func (m *Manager) fail(taskID, reason string) {
	record, exists := m.store.Get(taskID)
	if !exists || record.Status.Terminal() {
		return
	}
	record.Status = StatusFailed
	record.Progress = 0
	record.Message = "Generation failed: " + reason
	record.Error = reason
	m.store.Update(record)
}
