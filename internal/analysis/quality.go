package analysis

import (
	"regexp"
	"strings"

	"devpal/backend/internal/models"
)

var functionKeywordPattern = regexp.MustCompile(`(def |function |void |public |private )`)

// QualityScore computes the coarse 0-100 score: base 50, plus bonuses for a
// readable length, a visible comment ratio and the presence of functions.
func QualityScore(code string) int {
	score := 50

	lines := strings.Split(code, "\n")
	if len(lines) >= 10 && len(lines) <= 100 {
		score += 10
	}

	commentLines := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "/*") {
			commentLines++
		}
	}
	if len(lines) > 0 && float64(commentLines)/float64(len(lines)) > 0.1 {
		score += 15
	}

	if functionKeywordPattern.MatchString(code) {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// GeneralSuggestions returns the advice attached to every analysis result,
// tuned only by snippet length and language.
func GeneralSuggestions(code string, language models.CodeLanguage) []string {
	var suggestions []string

	if len(code) > 5000 {
		suggestions = append(suggestions, "The code is long, consider splitting it into modules")
	}

	switch language {
	case models.LanguageCSharp:
		suggestions = append(suggestions, "Follow C# conventions and use PascalCase naming")
	case models.LanguagePython:
		suggestions = append(suggestions, "Follow the PEP 8 style guide")
	}

	suggestions = append(suggestions,
		"Consider adding unit tests",
		"Consider adding error handling",
		"Review the code regularly",
	)

	return suggestions
}
