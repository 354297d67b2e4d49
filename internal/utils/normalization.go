package utils

import (
	"fmt"
	"strings"
)

func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// StripFences removes a surrounding markdown code fence (with optional
// language tag) from text, returning the trimmed content.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	// drop the opening fence line and a closing fence if present
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// AddLineNumbers prefixes each line with its 1-based number.
func AddLineNumbers(code string) string {
	if code == "" {
		return ""
	}
	lines := strings.Split(code, "\n")
	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(fmt.Sprintf("%d: %s", i+1, line))
	}
	return builder.String()
}
