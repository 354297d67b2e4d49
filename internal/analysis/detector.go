// Package analysis holds the regex heuristics: language detection, lexical
// metrics and the quality score. Everything here is deliberately
// approximate: pattern counting over raw text, with no parsing, no
// string-literal awareness and no nesting awareness. Callers should treat
// the outputs as hints, not facts.
package analysis

import (
	"regexp"

	"devpal/backend/internal/models"
)

// signature holds the compiled patterns for one candidate language.
type signature struct {
	language models.CodeLanguage
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile("(?im)" + expr)
	}
	return compiled
}

// signatures is evaluated in declaration order; on a tied score the first
// declared language wins. That ordering bias is an acknowledged weakness of
// the heuristic, kept rather than hidden.
var signatures = []signature{
	{models.LanguageCSharp, compileAll(`using\s+\w+;`, `public\s+class`, `void\s+\w+\(`, `MonoBehaviour`)},
	{models.LanguageCPP, compileAll(`#include\s*<`, `std::`, `int\s+main\(`, `class\s+\w+`)},
	{models.LanguagePython, compileAll(`import\s+\w+`, `def\s+\w+\(`, `if\s+__name__`, `print\(`)},
	{models.LanguageJavaScript, compileAll(`function\s+\w+`, `var\s+\w+`, `console\.log`, `=>`)},
	{models.LanguageTypeScript, compileAll(`interface\s+\w+`, `type\s+\w+`, `:\s*\w+\s*=`)},
	{models.LanguageGDScript, compileAll(`extends\s+\w+`, `func\s+\w+`, `var\s+\w+:`, `_ready\(\)`)},
	{models.LanguageLua, compileAll(`function\s+\w+`, `local\s+\w+`, `end$`, `require\(`)},
}

// DetectLanguage guesses the language of a snippet by counting signature
// matches per candidate and taking the arg-max. Returns LanguageAuto when
// nothing matches at all. Never fails; cost is O(patterns × len(code)).
func DetectLanguage(code string) models.CodeLanguage {
	best := models.LanguageAuto
	bestScore := 0

	for _, sig := range signatures {
		score := 0
		for _, pattern := range sig.patterns {
			score += len(pattern.FindAllStringIndex(code, -1))
		}
		if score > bestScore {
			bestScore = score
			best = sig.language
		}
	}

	return best
}

// DetectionConfidence is the fixed confidence reported alongside a detection
// result. The heuristic has no probabilistic model behind it.
const DetectionConfidence = 0.85

// Candidates returns the detection result in the shape the detect-language
// operation reports: the winner with the fixed confidence, and the remainder
// assigned to the unknown sentinel.
func Candidates(detected models.CodeLanguage) []models.LanguageCandidate {
	return []models.LanguageCandidate{
		{Language: detected, Probability: DetectionConfidence},
		{Language: models.LanguageAuto, Probability: 1 - DetectionConfidence},
	}
}
