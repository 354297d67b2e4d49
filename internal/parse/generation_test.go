package parse

import (
	"encoding/json"
	"strings"
	"testing"

	"devpal/backend/internal/models"
)

func TestGenerationStructured(t *testing.T) {
	payload := map[string]any{
		"code":          "print('hi')",
		"explanation":   "prints a greeting",
		"dependencies":  []string{"sys"},
		"usage_example": "python main.py",
		"suggestions":   []string{"add a docstring"},
		"complexity":    "low",
	}
	raw, _ := json.Marshal(payload)

	resp, outcome := Generation(string(raw), &models.GenerateRequest{})
	if outcome != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", outcome)
	}
	if !resp.Success {
		t.Fatal("structured parse must report success")
	}
	if resp.GeneratedCode != "print('hi')" || resp.Explanation != "prints a greeting" {
		t.Fatalf("fields not copied from JSON: %+v", resp)
	}
	if resp.EstimatedComplexity != "low" {
		t.Fatalf("expected complexity low, got %s", resp.EstimatedComplexity)
	}
	if len(resp.Dependencies) != 1 || resp.Dependencies[0] != "sys" {
		t.Fatalf("dependencies not copied: %v", resp.Dependencies)
	}
}

func TestGenerationStructuredMissingFields(t *testing.T) {
	resp, outcome := Generation(`{"code":"x = 1"}`, &models.GenerateRequest{})
	if outcome != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", outcome)
	}
	if resp.GeneratedCode != "x = 1" {
		t.Fatalf("unexpected code: %q", resp.GeneratedCode)
	}
	if resp.EstimatedComplexity != "medium" {
		t.Fatalf("missing complexity must default to medium, got %s", resp.EstimatedComplexity)
	}
}

func TestGenerationFallbackFence(t *testing.T) {
	raw := "Sure, here is the script:\n```python\nprint('hi')\n```\nHope that helps."

	resp, outcome := Generation(raw, &models.GenerateRequest{Description: "a greeting script"})
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	if !resp.Success {
		t.Fatal("fallback must still report success")
	}
	if resp.GeneratedCode != "print('hi')" {
		t.Fatalf("fence content not extracted: %q", resp.GeneratedCode)
	}
	if resp.Explanation == "" || len(resp.Suggestions) != 3 {
		t.Fatalf("fallback must synthesize explanation and suggestions: %+v", resp)
	}
}

func TestGenerationFallbackWholeText(t *testing.T) {
	raw := "   x = 1\ny = 2   "
	resp, outcome := Generation(raw, &models.GenerateRequest{})
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	if resp.GeneratedCode != "x = 1\ny = 2" {
		t.Fatalf("whole text should be trimmed and kept: %q", resp.GeneratedCode)
	}
}

func TestGenerationDependencyHints(t *testing.T) {
	req := &models.GenerateRequest{Description: "A Unity character controller"}
	resp, _ := Generation("not json, no fence", req)
	if len(resp.Dependencies) == 0 || resp.Dependencies[0] != "UnityEngine" {
		t.Fatalf("unity description must infer UnityEngine: %v", resp.Dependencies)
	}

	resp, _ = Generation("not json, no fence", &models.GenerateRequest{Description: "a sorting function"})
	if len(resp.Dependencies) != 0 {
		t.Fatalf("plain description must infer nothing: %v", resp.Dependencies)
	}
}

// arbitrary provider output must normalize without panicking
func TestGenerationNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"{not json",
		"```\nunclosed fence",
		strings.Repeat("`", 1000),
		"\x00\xff",
		`{"code": 42, "dependencies": "not a list"}`,
	}

	for _, input := range inputs {
		resp, _ := Generation(input, &models.GenerateRequest{})
		if resp == nil {
			t.Fatalf("nil response for input %q", input)
		}
		if !resp.Success {
			t.Fatalf("normalization must not fail for input %q", input)
		}
	}
}
