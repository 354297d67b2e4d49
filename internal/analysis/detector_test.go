package analysis

import (
	"strings"
	"testing"

	"devpal/backend/internal/models"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		code string
		want models.CodeLanguage
	}{
		{
			name: "python hello world",
			code: "print('Hello, World!')",
			want: models.LanguagePython,
		},
		{
			name: "python function",
			code: "import os\n\ndef main():\n    print('hi')\n\nif __name__ == '__main__':\n    main()",
			want: models.LanguagePython,
		},
		{
			name: "csharp monobehaviour",
			code: "using UnityEngine;\n\npublic class Player : MonoBehaviour {\n    void Update() {}\n}",
			want: models.LanguageCSharp,
		},
		{
			name: "cpp includes",
			code: "#include <iostream>\n\nint main() {\n    std::cout << \"hi\";\n}",
			want: models.LanguageCPP,
		},
		{
			name: "javascript arrow",
			code: "const add = (a, b) => a + b;\nconsole.log(add(1, 2));",
			want: models.LanguageJavaScript,
		},
		{
			name: "gdscript ready",
			code: "extends Node2D\n\nfunc _ready():\n    pass",
			want: models.LanguageGDScript,
		},
		{
			name: "nothing matches",
			code: "just some plain prose with no code at all",
			want: models.LanguageAuto,
		},
		{
			name: "empty input",
			code: "",
			want: models.LanguageAuto,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLanguage(tc.code); got != tc.want {
				t.Fatalf("DetectLanguage() = %s, want %s", got, tc.want)
			}
		})
	}
}

// The result must always be a member of the supported set (or the auto
// sentinel), whatever the input looks like.
func TestDetectLanguageAlwaysInSupportedSet(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02 binary garbage",
		strings.Repeat("}{", 5000),
		"using import def function local extends",
	}

	valid := map[models.CodeLanguage]bool{models.LanguageAuto: true}
	for _, lang := range models.SupportedLanguagesList() {
		valid[lang] = true
	}

	for _, input := range inputs {
		if got := DetectLanguage(input); !valid[got] {
			t.Fatalf("DetectLanguage returned %s, not in the supported set", got)
		}
	}
}

func TestCandidates(t *testing.T) {
	candidates := Candidates(models.LanguagePython)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Language != models.LanguagePython || candidates[0].Probability != DetectionConfidence {
		t.Fatalf("unexpected winner: %+v", candidates[0])
	}
	total := candidates[0].Probability + candidates[1].Probability
	if total < 0.999 || total > 1.001 {
		t.Fatalf("probabilities must sum to 1, got %f", total)
	}
}
