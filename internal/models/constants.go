package models

// CodeLanguage identifies a programming language the analyzer understands.
type CodeLanguage string

const (
	LanguageCSharp     CodeLanguage = "csharp"
	LanguageCPP        CodeLanguage = "cpp"
	LanguageJavaScript CodeLanguage = "javascript"
	LanguageTypeScript CodeLanguage = "typescript"
	LanguagePython     CodeLanguage = "python"
	LanguageGDScript   CodeLanguage = "gdscript"
	LanguageLua        CodeLanguage = "lua"
	LanguageHLSL       CodeLanguage = "hlsl"
	LanguageGLSL       CodeLanguage = "glsl"
	// LanguageAuto doubles as the "detect it for me" request value and the
	// detector's unknown sentinel.
	LanguageAuto CodeLanguage = "auto"
)

// AnalysisType selects what kind of analysis to run on a snippet.
type AnalysisType string

const (
	AnalysisExplain  AnalysisType = "explain"
	AnalysisOptimize AnalysisType = "optimize"
	AnalysisDocument AnalysisType = "document"
)

// contains all supported analysis languages (in lowercase)
var SupportedLanguages = map[CodeLanguage]bool{
	LanguageCSharp:     true,
	LanguageCPP:        true,
	LanguageJavaScript: true,
	LanguageTypeScript: true,
	LanguagePython:     true,
	LanguageGDScript:   true,
	LanguageLua:        true,
	LanguageHLSL:       true,
	LanguageGLSL:       true,
}

// contains all valid analysis types
var ValidAnalysisTypes = map[AnalysisType]bool{
	AnalysisExplain:  true,
	AnalysisOptimize: true,
	AnalysisDocument: true,
}

// contains all valid detail levels for analysis (in lowercase)
var ValidDetailLevels = map[string]bool{
	"basic":    true,
	"medium":   true,
	"detailed": true,
}

// contains all valid code styles for generation (in lowercase)
var ValidCodeStyles = map[string]bool{
	"standard": true,
	"compact":  true,
	"verbose":  true,
}

const (
	DefaultDetailLevel = "medium"
	DefaultCodeStyle   = "standard"

	// Request size bounds, enforced before anything touches a provider.
	MinDescriptionLength = 10
	MaxDescriptionLength = 2000
	MaxRequirementsLen   = 500
	MinCodeLength        = 10
	MaxCodeLength        = 10000
	MaxContextLength     = 1000
)

// language aliases accepted on the wire, e.g. "c#" or "py"
var languageAliases = map[string]CodeLanguage{
	"csharp":     LanguageCSharp,
	"c#":         LanguageCSharp,
	"cs":         LanguageCSharp,
	"cpp":        LanguageCPP,
	"c++":        LanguageCPP,
	"javascript": LanguageJavaScript,
	"js":         LanguageJavaScript,
	"typescript": LanguageTypeScript,
	"ts":         LanguageTypeScript,
	"python":     LanguagePython,
	"py":         LanguagePython,
	"gdscript":   LanguageGDScript,
	"lua":        LanguageLua,
	"hlsl":       LanguageHLSL,
	"glsl":       LanguageGLSL,
}

// ResolveLanguage maps a wire value (including aliases) to a CodeLanguage,
// falling back to LanguageAuto for anything unrecognized.
func ResolveLanguage(name string) CodeLanguage {
	if lang, ok := languageAliases[name]; ok {
		return lang
	}
	return LanguageAuto
}

func SupportedLanguagesList() []CodeLanguage {
	return []CodeLanguage{
		LanguageCSharp, LanguageCPP, LanguageJavaScript, LanguageTypeScript,
		LanguagePython, LanguageGDScript, LanguageLua, LanguageHLSL, LanguageGLSL,
	}
}

func ValidAnalysisTypesList() []AnalysisType {
	return []AnalysisType{AnalysisExplain, AnalysisOptimize, AnalysisDocument}
}
