package parse

import (
	"testing"
)

func TestExplanationStructured(t *testing.T) {
	raw := `{
		"overview": "a player controller",
		"detailed_explanation": "moves the player with input axes",
		"key_concepts": ["Unity engine", "input system"],
		"complexity_analysis": "O(1) per frame",
		"potential_issues": ["no null checks"]
	}`

	explanation, outcome := Explanation(raw)
	if outcome != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", outcome)
	}
	if explanation.Overview != "a player controller" {
		t.Fatalf("unexpected overview: %q", explanation.Overview)
	}
	if len(explanation.KeyConcepts) != 2 || len(explanation.PotentialIssues) != 1 {
		t.Fatalf("lists not copied: %+v", explanation)
	}
}

func TestExplanationFallbackKeywords(t *testing.T) {
	raw := "This MonoBehaviour reads Input every frame and moves the Transform. " +
		"There is a potential performance issue in the Update loop."

	explanation, outcome := Explanation(raw)
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	if explanation.DetailedExplanation != raw {
		t.Fatal("fallback must keep the whole text as the detailed explanation")
	}

	concepts := map[string]bool{}
	for _, c := range explanation.KeyConcepts {
		concepts[c] = true
	}
	if !concepts["Unity scripting"] || !concepts["input system"] || !concepts["transform component"] {
		t.Fatalf("keyword concepts missing: %v", explanation.KeyConcepts)
	}

	if len(explanation.PotentialIssues) != 2 {
		t.Fatalf("expected issue and performance hits, got %v", explanation.PotentialIssues)
	}
}

func TestExplanationFallbackEmpty(t *testing.T) {
	explanation, outcome := Explanation("plain text with no keywords")
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	if len(explanation.KeyConcepts) != 0 || len(explanation.PotentialIssues) != 0 {
		t.Fatalf("no keywords means empty lists: %+v", explanation)
	}
}

func TestOptimizationStructured(t *testing.T) {
	raw := `{
		"optimized_code": "for key in cache: pass",
		"optimization_summary": "cached lookups",
		"changes_made": ["hoisted the lookup"],
		"performance_impact": "fewer allocations",
		"before_after_comparison": {"before": "slow", "after": "fast"}
	}`

	optimization, outcome := Optimization(raw, "original")
	if outcome != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", outcome)
	}
	if optimization.OptimizedCode != "for key in cache: pass" {
		t.Fatalf("unexpected code: %q", optimization.OptimizedCode)
	}
	if optimization.BeforeAfterComparison["before"] != "slow" {
		t.Fatalf("comparison not copied: %v", optimization.BeforeAfterComparison)
	}
}

func TestOptimizationFallbackKeepsOriginal(t *testing.T) {
	original := "def slow(): pass"
	optimization, outcome := Optimization("```python\nsomething\n```", original)
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	// no fence scan for this kind: the original code comes back untouched
	if optimization.OptimizedCode != original {
		t.Fatalf("fallback must return the original code, got %q", optimization.OptimizedCode)
	}
	if optimization.BeforeAfterComparison == nil {
		t.Fatal("comparison map must be non-nil")
	}
}

func TestDocumentationFallbackKeepsOriginal(t *testing.T) {
	original := "func main() {}"
	documentation, outcome := Documentation("the model rambled instead", original)
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
	if documentation.DocumentedCode != original {
		t.Fatalf("fallback must return the original code, got %q", documentation.DocumentedCode)
	}
	if len(documentation.UsageExamples) == 0 {
		t.Fatal("fallback must note the failure in usage examples")
	}
}
