package parse

import (
	"encoding/json"
	"strings"

	"devpal/backend/internal/models"
)

// fallback dependency inference, keyed on engine names in the description
var dependencyHints = []struct {
	keyword string
	deps    []string
}{
	{"unity", []string{"UnityEngine", "UnityEngine.UI"}},
	{"pygame", []string{"pygame", "pygame.sprite"}},
	{"unreal", []string{"UnrealEngine", "CoreUObject"}},
	{"godot", []string{"Godot"}},
}

var fallbackGenerationSuggestions = []string{
	"Test the code before relying on it",
	"Adjust parameters to fit your needs",
	"Keep an eye on performance",
}

// Generation normalizes raw provider text into a GenerateResponse. Strict
// JSON first; otherwise the first fenced block (or the whole text) becomes
// the code payload and the structured fields are synthesized.
func Generation(raw string, req *models.GenerateRequest) (*models.GenerateResponse, Outcome) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return &models.GenerateResponse{
			Success:             true,
			GeneratedCode:       stringOr(data, "code", ""),
			Explanation:         stringOr(data, "explanation", ""),
			Dependencies:        stringSlice(data, "dependencies"),
			UsageExample:        stringOr(data, "usage_example", ""),
			Suggestions:         stringSlice(data, "suggestions"),
			EstimatedComplexity: stringOr(data, "complexity", "medium"),
		}, OutcomeStructured
	}

	code, found := ExtractFencedCode(raw)
	if !found {
		code = strings.TrimSpace(raw)
	} else {
		code = strings.TrimSpace(code)
	}

	return &models.GenerateResponse{
		Success:             true,
		GeneratedCode:       code,
		Explanation:         "Code was generated from your request. See the code itself for engine and language details.",
		Dependencies:        inferDependencies(req),
		UsageExample:        "// Attach this script to a game object to use it",
		Suggestions:         append([]string(nil), fallbackGenerationSuggestions...),
		EstimatedComplexity: "medium",
	}, OutcomeFallback
}

func inferDependencies(req *models.GenerateRequest) []string {
	if req == nil {
		return nil
	}
	description := strings.ToLower(req.Description)
	for _, hint := range dependencyHints {
		if strings.Contains(description, hint.keyword) {
			return append([]string(nil), hint.deps...)
		}
	}
	return nil
}
