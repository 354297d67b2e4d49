package models

import (
	"time"

	"gorm.io/gorm"
)

// AIFeedback stores user feedback on AI responses for later export as
// training data. User identity is intentionally not recorded.
type AIFeedback struct {
	gorm.Model
	RequestID   string     `gorm:"uniqueIndex;not null" json:"request_id"`
	RequestType string     `gorm:"not null" json:"request_type"` // "generate", "explain", "optimize", "document"
	Prompt      string     `gorm:"type:text;not null" json:"prompt"`
	Response    string     `gorm:"type:text;not null" json:"response"`
	IsPositive  bool       `gorm:"not null" json:"is_positive"`
	Provider    string     `gorm:"not null" json:"provider"`
	ModelName   string     `gorm:"not null" json:"model_name"`
	FeedbackAt  time.Time  `gorm:"not null" json:"feedback_at"`
	Exported    bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt  *time.Time `json:"exported_at"`
}

// TrainingDataPoint is a single JSONL training example built from positive
// feedback during export.
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}

// RequestContext is the prompt/response pair kept in memory (with TTL) so a
// later feedback call can be tied back to what the model actually saw.
type RequestContext struct {
	RequestID   string
	RequestType string
	Prompt      string
	Response    string
	Provider    string
	ModelName   string
	Timestamp   time.Time
}
