// Package parse normalizes raw provider text into typed results. Every
// entry point runs the same two stages: a strict JSON parse of the whole
// text, then a heuristic fallback when that fails. The outcome says which
// path produced the result; the caller never sees a parse error.
package parse

import "regexp"

// Outcome reports which stage produced a result.
type Outcome int

const (
	// OutcomeStructured means the provider returned conforming JSON and
	// every field was populated directly from it.
	OutcomeStructured Outcome = iota
	// OutcomeFallback means strict parsing failed and the result was built
	// heuristically from the raw text.
	OutcomeFallback
)

func (o Outcome) String() string {
	if o == OutcomeStructured {
		return "structured"
	}
	return "fallback"
}

// fencePattern finds a fenced code block with an optional language tag.
// First match wins.
var fencePattern = regexp.MustCompile("(?is)```[a-z0-9_+#-]*[ \t]*\\n(.*?)\\n```")

// ExtractFencedCode returns the content of the first fenced block in text
// and whether one was found.
func ExtractFencedCode(text string) (string, bool) {
	match := fencePattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// stringOr returns the string under key, or fallback when absent or not a
// string. Strict-parse fields are always read with defaults, never required.
func stringOr(data map[string]any, key, fallback string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return fallback
}

func stringSlice(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(data map[string]any, key string) map[string]string {
	raw, ok := data[key].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
