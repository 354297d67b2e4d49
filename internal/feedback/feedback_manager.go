// Package feedback collects thumbs-up/down signals on AI responses and
// stores them for training-data export.
package feedback

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devpal/backend/internal/models"
)

// FeedbackManager ties request contexts to submitted feedback and persists
// the pairs.
type FeedbackManager struct {
	db           *gorm.DB
	contextCache *ContextCache
	logger       *zap.Logger
}

func NewFeedbackManager(db *gorm.DB, cacheTTL time.Duration, logger *zap.Logger) *FeedbackManager {
	return &FeedbackManager{
		db:           db,
		contextCache: NewContextCache(cacheTTL),
		logger:       logger,
	}
}

// StoreRequestContext caches a prompt/response pair for later feedback.
func (fm *FeedbackManager) StoreRequestContext(ctx *models.RequestContext) {
	fm.contextCache.Set(ctx.RequestID, ctx)
	fm.logger.Debug("stored request context",
		zap.String("request_id", ctx.RequestID),
		zap.String("request_type", ctx.RequestType))
}

// SubmitFeedback persists user feedback for a request whose context is
// still cached.
func (fm *FeedbackManager) SubmitFeedback(requestID string, isPositive bool) error {
	ctx, exists := fm.contextCache.Get(requestID)
	if !exists {
		return fmt.Errorf("request context not found or expired: %s", requestID)
	}

	record := &models.AIFeedback{
		RequestID:   requestID,
		RequestType: ctx.RequestType,
		Prompt:      ctx.Prompt,
		Response:    ctx.Response,
		IsPositive:  isPositive,
		Provider:    ctx.Provider,
		ModelName:   ctx.ModelName,
		FeedbackAt:  time.Now(),
		Exported:    false,
	}

	if err := fm.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	// context is only needed once
	fm.contextCache.Delete(requestID)

	fm.logger.Info("stored feedback",
		zap.String("request_id", requestID),
		zap.Bool("is_positive", isPositive),
		zap.String("request_type", ctx.RequestType))

	return nil
}

// GetUnexportedFeedback retrieves feedback not yet written to an export
// file. A limit of 0 means no limit.
func (fm *FeedbackManager) GetUnexportedFeedback(limit int) ([]models.AIFeedback, error) {
	var records []models.AIFeedback

	query := fm.db.Where("exported = ?", false).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	return records, nil
}

// MarkAsExported flags feedback rows as exported.
func (fm *FeedbackManager) MarkAsExported(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	err := fm.db.Model(&models.AIFeedback{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"exported": true, "exported_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to mark feedback as exported: %w", err)
	}

	return nil
}

// ExportToJSONL renders positive feedback as JSONL training examples, one
// prompt/response conversation per line. Negative feedback is skipped; it
// tells us what not to train on.
func (fm *FeedbackManager) ExportToJSONL(records []models.AIFeedback) ([]byte, error) {
	var builder strings.Builder

	for _, record := range records {
		if !record.IsPositive {
			continue
		}

		point := models.TrainingDataPoint{
			Contents: []models.TrainingContent{
				{Role: "user", Parts: []models.TrainingPart{{Text: record.Prompt}}},
				{Role: "model", Parts: []models.TrainingPart{{Text: record.Response}}},
			},
		}

		line, err := json.Marshal(point)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal training data point: %w", err)
		}
		builder.Write(line)
		builder.WriteByte('\n')
	}

	return []byte(builder.String()), nil
}

// GetFeedbackStats returns summary counts for the stats endpoint.
func (fm *FeedbackManager) GetFeedbackStats() (map[string]any, error) {
	var total, positive, unexported int64

	if err := fm.db.Model(&models.AIFeedback{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	if err := fm.db.Model(&models.AIFeedback{}).Where("is_positive = ?", true).Count(&positive).Error; err != nil {
		return nil, fmt.Errorf("failed to count positive feedback: %w", err)
	}
	if err := fm.db.Model(&models.AIFeedback{}).Where("exported = ?", false).Count(&unexported).Error; err != nil {
		return nil, fmt.Errorf("failed to count unexported feedback: %w", err)
	}

	return map[string]any{
		"total_feedback":      int(total),
		"positive_feedback":   int(positive),
		"negative_feedback":   int(total - positive),
		"unexported_feedback": int(unexported),
		"cached_contexts":     fm.contextCache.Size(),
	}, nil
}
