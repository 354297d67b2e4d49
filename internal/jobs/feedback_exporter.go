// Package jobs holds scheduled background work.
package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"devpal/backend/internal/feedback"
)

// FeedbackExporterJob periodically writes positive feedback to JSONL files
// for offline training-data use.
type FeedbackExporterJob struct {
	feedbackManager *feedback.FeedbackManager
	config          *ExporterConfig
	cron            *cron.Cron
	logger          *zap.Logger
}

// ExporterConfig configures the exporter job.
type ExporterConfig struct {
	Schedule      string // cron schedule, e.g. "0 2 * * *" for 2 AM daily
	ExportDir     string // directory to store exported files
	ExportEnabled bool
}

func NewFeedbackExporterJob(feedbackManager *feedback.FeedbackManager, config *ExporterConfig, logger *zap.Logger) *FeedbackExporterJob {
	return &FeedbackExporterJob{
		feedbackManager: feedbackManager,
		config:          config,
		cron:            cron.New(),
		logger:          logger,
	}
}

// Start schedules the export job.
func (job *FeedbackExporterJob) Start() error {
	if !job.config.ExportEnabled {
		job.logger.Info("feedback export disabled, skipping scheduler")
		return nil
	}

	_, err := job.cron.AddFunc(job.config.Schedule, func() {
		if err := job.RunExport(); err != nil {
			job.logger.Error("feedback export run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	job.cron.Start()
	job.logger.Info("feedback exporter started", zap.String("schedule", job.config.Schedule))

	return nil
}

// Stop stops the scheduler.
func (job *FeedbackExporterJob) Stop() {
	if job.cron != nil {
		job.cron.Stop()
		job.logger.Info("feedback exporter stopped")
	}
}

// RunExport performs a single export run.
func (job *FeedbackExporterJob) RunExport() error {
	records, err := job.feedbackManager.GetUnexportedFeedback(0) // no limit
	if err != nil {
		return fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	if len(records) == 0 {
		job.logger.Info("no unexported feedback found")
		return nil
	}

	jsonlData, err := job.feedbackManager.ExportToJSONL(records)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	positiveCount := 0
	for _, record := range records {
		if record.IsPositive {
			positiveCount++
		}
	}

	ids := make([]uint, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	if positiveCount == 0 {
		job.logger.Info("no positive feedback to export, skipping file creation")
		// still mark rows so negative feedback is not reprocessed forever
		return job.feedbackManager.MarkAsExported(ids)
	}

	if err := os.MkdirAll(job.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("feedback_export_%s.jsonl", time.Now().Format("20060102_150405"))
	path := filepath.Join(job.config.ExportDir, filename)

	if err := os.WriteFile(path, jsonlData, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	job.logger.Info("exported positive feedback",
		zap.Int("samples", positiveCount),
		zap.String("path", path))

	return job.feedbackManager.MarkAsExported(ids)
}
