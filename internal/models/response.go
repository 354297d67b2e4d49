package models

// GenerateResponse is the normalized outcome of a generation request.
// Produced exactly once per request and never mutated afterwards. When
// Success is false, Explanation carries a human-readable reason and the
// payload fields hold defaults, never partial parse output.
type GenerateResponse struct {
	Success             bool     `json:"success"`
	GeneratedCode       string   `json:"generated_code"`
	Explanation         string   `json:"explanation"`
	Suggestions         []string `json:"suggestions,omitempty"`
	Dependencies        []string `json:"dependencies,omitempty"`
	UsageExample        string   `json:"usage_example,omitempty"`
	EstimatedComplexity string   `json:"estimated_complexity,omitempty"`
	RequestID           string   `json:"request_id,omitempty"`
}

// CodeExplanation is the explain-kind analysis payload.
type CodeExplanation struct {
	Overview            string   `json:"overview"`
	DetailedExplanation string   `json:"detailed_explanation"`
	KeyConcepts         []string `json:"key_concepts"`
	ComplexityAnalysis  string   `json:"complexity_analysis"`
	PotentialIssues     []string `json:"potential_issues,omitempty"`
}

// CodeOptimization is the optimize-kind analysis payload.
type CodeOptimization struct {
	OptimizedCode         string            `json:"optimized_code"`
	OptimizationSummary   string            `json:"optimization_summary"`
	ChangesMade           []string          `json:"changes_made"`
	PerformanceImpact     string            `json:"performance_impact"`
	BeforeAfterComparison map[string]string `json:"before_after_comparison"`
}

// CodeDocumentation is the document-kind analysis payload.
type CodeDocumentation struct {
	DocumentedCode        string            `json:"documented_code"`
	APIDocumentation      string            `json:"api_documentation,omitempty"`
	UsageExamples         []string          `json:"usage_examples"`
	ParameterDescriptions map[string]string `json:"parameter_descriptions,omitempty"`
}

// AnalyzeResponse is the normalized outcome of an analysis request. Exactly
// one of Explanation, Optimization or Documentation is set, matching
// AnalysisType.
type AnalyzeResponse struct {
	Success            bool               `json:"success"`
	DetectedLanguage   CodeLanguage       `json:"detected_language"`
	AnalysisType       AnalysisType       `json:"analysis_type"`
	Explanation        *CodeExplanation   `json:"explanation,omitempty"`
	Optimization       *CodeOptimization  `json:"optimization,omitempty"`
	Documentation      *CodeDocumentation `json:"documentation,omitempty"`
	GeneralSuggestions []string           `json:"general_suggestions"`
	CodeQualityScore   *int               `json:"code_quality_score,omitempty"`
	AnalysisMetadata   map[string]any     `json:"analysis_metadata"`
	RequestID          string             `json:"request_id,omitempty"`
}

// CodeAnalysisResponse is the combined-analysis reply: a list of result
// sections shaped for direct rendering by the web client.
type CodeAnalysisResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Results   []AnalysisResult `json:"results"`
	Timestamp string           `json:"timestamp"`
}

// AnalysisResult is one section of a combined analysis: markdown content
// plus severity-tagged suggestions and optional code blocks.
type AnalysisResult struct {
	Type        string               `json:"type"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Suggestions []AnalysisSuggestion `json:"suggestions"`
	CodeBlocks  []string             `json:"codeBlocks"`
}

type AnalysisSuggestion struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DetectLanguageResponse reports the detector's guess.
type DetectLanguageResponse struct {
	DetectedLanguage  CodeLanguage        `json:"detected_language"`
	Confidence        float64             `json:"confidence"`
	PossibleLanguages []LanguageCandidate `json:"possible_languages"`
}

type LanguageCandidate struct {
	Language    CodeLanguage `json:"language"`
	Probability float64      `json:"probability"`
}

// CodeMetrics holds coarse lexical statistics. These are regex
// approximations, not static-analysis-grade numbers. Comment detection has
// no string-literal awareness and counts are keyword-based across languages.
type CodeMetrics struct {
	LinesOfCode          int      `json:"lines_of_code"`
	CyclomaticComplexity *int     `json:"cyclomatic_complexity,omitempty"`
	FunctionCount        int      `json:"function_count"`
	ClassCount           int      `json:"class_count"`
	CommentRatio         float64  `json:"comment_ratio"`
	MaintainabilityIndex *float64 `json:"maintainability_index,omitempty"`
}

// GenerationStatus is the poll view of an asynchronous generation task.
type GenerationStatus struct {
	RequestID     string `json:"request_id"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	EstimatedTime *int   `json:"estimated_time,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ConfigTestResponse reports the outcome of a provider connectivity test.
type ConfigTestResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	ResponseTimeMS *int   `json:"response_time_ms,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}
