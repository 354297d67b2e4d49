package parse

import (
	"encoding/json"
	"strings"

	"devpal/backend/internal/models"
)

// Literal keyword tables for the explanation fallback. These are coarse
// heuristics over the raw text, not NLP extraction; the word lists are part
// of the behavior and must not be reinterpreted.
var keyConceptKeywords = []struct {
	keyword string
	concept string
}{
	{"Unity", "Unity engine"},
	{"MonoBehaviour", "Unity scripting"},
	{"Input", "input system"},
	{"Transform", "transform component"},
	{"Rigidbody", "physics component"},
}

var potentialIssueKeywords = []struct {
	keyword string
	issue   string
}{
	{"issue", "The code may contain areas that need attention"},
	{"performance", "Consider performance optimization"},
	{"security", "Consider a security review"},
}

// Explanation normalizes raw provider text into a CodeExplanation. The
// fallback keeps the whole text as the detailed explanation and scans it
// for the fixed keyword sets.
func Explanation(raw string) (*models.CodeExplanation, Outcome) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return &models.CodeExplanation{
			Overview:            stringOr(data, "overview", "Code overview"),
			DetailedExplanation: stringOr(data, "detailed_explanation", "Detailed explanation"),
			KeyConcepts:         stringSlice(data, "key_concepts"),
			ComplexityAnalysis:  stringOr(data, "complexity_analysis", "Complexity analysis"),
			PotentialIssues:     stringSlice(data, "potential_issues"),
		}, OutcomeStructured
	}

	var keyConcepts []string
	for _, entry := range keyConceptKeywords {
		if strings.Contains(raw, entry.keyword) {
			keyConcepts = append(keyConcepts, entry.concept)
		}
	}

	lowered := strings.ToLower(raw)
	var potentialIssues []string
	for _, entry := range potentialIssueKeywords {
		if strings.Contains(lowered, entry.keyword) {
			potentialIssues = append(potentialIssues, entry.issue)
		}
	}

	return &models.CodeExplanation{
		Overview:            "Code analysis completed",
		DetailedExplanation: raw,
		KeyConcepts:         keyConcepts,
		ComplexityAnalysis:  "Medium complexity",
		PotentialIssues:     potentialIssues,
	}, OutcomeFallback
}

// Optimization normalizes raw provider text into a CodeOptimization. On
// parse failure the original code is returned untouched with placeholder
// fields; there is no fence scan for this kind.
func Optimization(raw, originalCode string) (*models.CodeOptimization, Outcome) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return &models.CodeOptimization{
			OptimizedCode:         stringOr(data, "optimized_code", originalCode),
			OptimizationSummary:   stringOr(data, "optimization_summary", "Optimization summary"),
			ChangesMade:           stringSlice(data, "changes_made"),
			PerformanceImpact:     stringOr(data, "performance_impact", "Performance impact assessment"),
			BeforeAfterComparison: stringMap(data, "before_after_comparison"),
		}, OutcomeStructured
	}

	return &models.CodeOptimization{
		OptimizedCode:         originalCode,
		OptimizationSummary:   "Optimization failed",
		ChangesMade:           []string{"Response could not be parsed"},
		PerformanceImpact:     "Could not be assessed",
		BeforeAfterComparison: map[string]string{},
	}, OutcomeFallback
}

// Documentation normalizes raw provider text into a CodeDocumentation. Same
// contract as Optimization: parse failure degrades to the original code.
func Documentation(raw, originalCode string) (*models.CodeDocumentation, Outcome) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return &models.CodeDocumentation{
			DocumentedCode:        stringOr(data, "documented_code", originalCode),
			APIDocumentation:      stringOr(data, "api_documentation", ""),
			UsageExamples:         stringSlice(data, "usage_examples"),
			ParameterDescriptions: stringMap(data, "parameter_descriptions"),
		}, OutcomeStructured
	}

	return &models.CodeDocumentation{
		DocumentedCode:        originalCode,
		UsageExamples:         []string{"Documentation generation failed"},
		ParameterDescriptions: map[string]string{},
	}, OutcomeFallback
}
