package parse

import "testing"

func TestExtractFencedCode(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "plain fence",
			text:  "```\ncode here\n```",
			want:  "code here",
			found: true,
		},
		{
			name:  "language tag",
			text:  "Here you go:\n```python\nprint('hi')\n```\nenjoy",
			want:  "print('hi')",
			found: true,
		},
		{
			name:  "csharp tag",
			text:  "```c#\nvoid Update() {}\n```",
			want:  "void Update() {}",
			found: true,
		},
		{
			name:  "first fence wins",
			text:  "```\nfirst\n```\n```\nsecond\n```",
			want:  "first",
			found: true,
		},
		{
			name:  "multiline body",
			text:  "```go\nline one\nline two\n```",
			want:  "line one\nline two",
			found: true,
		},
		{
			name:  "no fence",
			text:  "just some text",
			found: false,
		},
		{
			name:  "empty input",
			text:  "",
			found: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractFencedCode(tc.text)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if found && got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeStructured.String() != "structured" {
		t.Fatal("unexpected structured label")
	}
	if OutcomeFallback.String() != "fallback" {
		t.Fatal("unexpected fallback label")
	}
}
