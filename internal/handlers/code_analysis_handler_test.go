package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"devpal/backend/internal/models"
)

func TestCodeAnalysisWithCustomPrompt(t *testing.T) {
	provider := &mockProvider{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return `{
				"overview": "a player controller",
				"detailed_explanation": "` + "```" + `\nmoves the player with transform.Translate\n` + "```" + `",
				"key_concepts": ["MonoBehaviour", "Update"],
				"complexity_analysis": "simple per-frame logic",
				"potential_issues": [
					"transform.Translate conflicts with the physics step",
					"rb may be null when the component is missing",
					"the jump force is hardcoded",
					"the update loop allocates a list every frame"
				]
			}`, nil
		},
	}
	router := newAnalyzeTestRouter(provider)

	body := `{
		"code": "public class Player : MonoBehaviour { void Update() { } }",
		"language": "c#",
		"analysis_types": ["quality_review"],
		"options": {"custom_prompt": "review this controller", "detail_level": "detailed"}
	}`
	rec := performRequest(router, http.MethodPost, "/code", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.CodeAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("analysis id must be set")
	}
	if resp.Status != "completed" {
		t.Fatalf("expected completed, got %s", resp.Status)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(resp.Results))
	}

	result := resp.Results[0]
	if result.Type != "quality_review" {
		t.Fatalf("expected quality_review result, got %s", result.Type)
	}
	for _, section := range []string{"## Overview", "## Detailed analysis", "## Key concepts", "## Complexity analysis", "## Code quality score"} {
		if !strings.Contains(result.Content, section) {
			t.Fatalf("content missing section %q:\n%s", section, result.Content)
		}
	}
	if strings.Contains(result.Content, "```") {
		t.Fatalf("fences must be stripped from the detailed explanation:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "moves the player with transform.Translate") {
		t.Fatalf("fenced explanation body must survive:\n%s", result.Content)
	}

	if len(result.CodeBlocks) != 1 || !strings.HasPrefix(result.CodeBlocks[0], "1: ") {
		t.Fatalf("code block must carry the line-numbered snippet: %v", result.CodeBlocks)
	}

	severityByTitle := map[string]string{}
	for _, s := range result.Suggestions {
		severityByTitle[s.Title] = s.Severity
	}
	if severityByTitle["Movement method conflict"] != "high" {
		t.Fatalf("translate issue must map to a high warning: %v", result.Suggestions)
	}
	if severityByTitle["Null reference risk"] != "high" {
		t.Fatalf("null issue must map to a high error: %v", result.Suggestions)
	}
	if severityByTitle["Hardcoded values"] != "low" {
		t.Fatalf("hardcoded issue must map to a low improvement: %v", result.Suggestions)
	}
	if severityByTitle["Code issue 4"] != "medium" {
		t.Fatalf("unmatched issue must fall back to a generic medium warning: %v", result.Suggestions)
	}
	if severityByTitle["Improvement suggestion"] != "low" {
		t.Fatalf("general suggestions must be appended as low improvements: %v", result.Suggestions)
	}
}

func TestCodeAnalysisWithoutCustomPrompt(t *testing.T) {
	provider := &mockProvider{}
	router := newAnalyzeTestRouter(provider)

	body := `{"code": "print('hi there')", "language": "py", "analysis_types": ["quality_review"]}`
	rec := performRequest(router, http.MethodPost, "/code", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.CodeAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "failed" {
		t.Fatalf("no custom prompt means no runnable analysis, got %s", resp.Status)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %v", resp.Results)
	}
}

func TestCodeAnalysisProviderFailure(t *testing.T) {
	provider := &mockProvider{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("upstream exploded")
		},
	}
	router := newAnalyzeTestRouter(provider)

	body := `{"code": "print('hi there')", "options": {"custom_prompt": "review"}}`
	rec := performRequest(router, http.MethodPost, "/code", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.CodeAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "completed" || len(resp.Results) != 1 {
		t.Fatalf("failure must still yield an error result: %+v", resp)
	}
	result := resp.Results[0]
	if result.Type != "error" {
		t.Fatalf("expected error result, got %s", result.Type)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0].Severity != "high" {
		t.Fatalf("error result must carry a high-severity suggestion: %v", result.Suggestions)
	}
}

func TestCodeAnalysisValidation(t *testing.T) {
	router := newAnalyzeTestRouter(&mockProvider{})

	rec := performRequest(router, http.MethodPost, "/code", `{"code": "   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "missing_code" {
		t.Fatalf("expected missing_code, got %s", errResp.Code)
	}
}
