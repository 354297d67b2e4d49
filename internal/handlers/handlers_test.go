package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"devpal/backend/internal/feedback"
	"devpal/backend/internal/models"
)

type mockProvider struct {
	completeFn       func(ctx context.Context, prompt string) (string, error)
	testConnectionFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFn == nil {
		return "{}", nil
	}
	return m.completeFn(ctx, prompt)
}

func (m *mockProvider) TestConnection(ctx context.Context, prompt string) (string, error) {
	if m.testConnectionFn == nil {
		return "connection test successful", nil
	}
	return m.testConnectionFn(ctx, prompt)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildPromptFn func(mode, variant string, data map[string]string) (string, error)
	modesFn       func() []string
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data map[string]string) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, variant, data)
}

func (m *mockPromptManager) Modes() []string {
	if m.modesFn == nil {
		return []string{"generate", "explain", "optimize", "document", "test_connection"}
	}
	return m.modesFn()
}

func newSQLiteFeedbackManager(t *testing.T) *feedback.FeedbackManager {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AIFeedback{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return feedback.NewFeedbackManager(db, time.Minute, zap.NewNop())
}

func performRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
