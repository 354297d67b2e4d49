package analysis

import (
	"regexp"
	"strings"

	"devpal/backend/internal/models"
)

// Comment patterns are matched against the whole text across all languages
// at once, with no string-literal awareness, so a `//` inside a string counts.
// Known source of false positives, accepted for a coarse ratio.
var commentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`//.*`),
	regexp.MustCompile(`#.*`),
	regexp.MustCompile(`(?s)/\*.*?\*/`),
	regexp.MustCompile(`(?s)""".*?"""`),
	regexp.MustCompile(`(?s)'''.*?'''`),
}

var functionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`def\s+\w+`),
	regexp.MustCompile(`function\s+\w+`),
	regexp.MustCompile(`void\s+\w+`),
	regexp.MustCompile(`public\s+\w+\s+\w+\(`),
}

var classPatterns = []*regexp.Regexp{
	regexp.MustCompile(`class\s+\w+`),
	regexp.MustCompile(`public\s+class\s+\w+`),
	regexp.MustCompile(`interface\s+\w+`),
}

// ComputeMetrics derives coarse lexical statistics from a snippet. Function
// and class counts are keyword matches across several languages
// simultaneously, not language-specific parsing. Cyclomatic complexity and
// maintainability index would need real analysis and stay unset.
func ComputeMetrics(code string) models.CodeMetrics {
	linesOfCode := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			linesOfCode++
		}
	}

	commentMatches := 0
	for _, pattern := range commentPatterns {
		commentMatches += len(pattern.FindAllStringIndex(code, -1))
	}
	commentRatio := 0.0
	if linesOfCode > 0 {
		commentRatio = float64(commentMatches) / float64(linesOfCode)
	}
	if commentRatio > 1.0 {
		commentRatio = 1.0
	}

	functionCount := 0
	for _, pattern := range functionPatterns {
		functionCount += len(pattern.FindAllStringIndex(code, -1))
	}

	classCount := 0
	for _, pattern := range classPatterns {
		classCount += len(pattern.FindAllStringIndex(code, -1))
	}

	return models.CodeMetrics{
		LinesOfCode:   linesOfCode,
		FunctionCount: functionCount,
		ClassCount:    classCount,
		CommentRatio:  commentRatio,
	}
}
