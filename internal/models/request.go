package models

import (
	"fmt"
	"strings"
)

// GenerateRequest asks for code to be generated from a natural-language
// description. The engine and target language live inside the description.
type GenerateRequest struct {
	Description            string `json:"description"`
	AdditionalRequirements string `json:"additional_requirements,omitempty"`
	IncludeComments        *bool  `json:"include_comments,omitempty"`
	CodeStyle              string `json:"code_style,omitempty"`
	RequestID              string `json:"request_id,omitempty"`
}

// WantsComments reports the comment-inclusion flag with its default of true.
func (r *GenerateRequest) WantsComments() bool {
	return r.IncludeComments == nil || *r.IncludeComments
}

// implements the Validator interface
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return &ErrorResponse{
			Code:    "missing_description",
			Message: "Description field is required",
		}
	}
	if len(r.Description) < MinDescriptionLength {
		return &ErrorResponse{
			Code:    "description_too_short",
			Message: fmt.Sprintf("Description must be at least %d characters", MinDescriptionLength),
		}
	}
	if len(r.Description) > MaxDescriptionLength {
		return &ErrorResponse{
			Code:    "description_too_long",
			Message: fmt.Sprintf("Description must not exceed %d characters", MaxDescriptionLength),
		}
	}
	if len(r.AdditionalRequirements) > MaxRequirementsLen {
		return &ErrorResponse{
			Code:    "requirements_too_long",
			Message: fmt.Sprintf("Additional requirements must not exceed %d characters", MaxRequirementsLen),
		}
	}

	if r.CodeStyle == "" {
		r.CodeStyle = DefaultCodeStyle
	}
	if !ValidCodeStyles[strings.ToLower(r.CodeStyle)] {
		return &ErrorResponse{
			Code:    "invalid_code_style",
			Message: "Code style must be one of: standard, compact, verbose",
		}
	}
	r.CodeStyle = strings.ToLower(r.CodeStyle)

	return nil
}

// AnalyzeRequest asks for an existing snippet to be explained, optimized or
// documented. Language may be "auto", in which case the detector rewrites it
// to a concrete value before any prompt is built.
type AnalyzeRequest struct {
	Code               string       `json:"code"`
	Language           CodeLanguage `json:"language,omitempty"`
	AnalysisType       AnalysisType `json:"analysis_type,omitempty"`
	Context            string       `json:"context,omitempty"`
	FocusAreas         []string     `json:"focus_areas,omitempty"`
	IncludeSuggestions *bool        `json:"include_suggestions,omitempty"`
	DetailLevel        string       `json:"detail_level,omitempty"`
	RequestID          string       `json:"request_id,omitempty"`
}

// implements the Validator interface
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{
			Code:    "missing_code",
			Message: "Code field is required",
		}
	}
	if len(r.Code) < MinCodeLength {
		return &ErrorResponse{
			Code:    "code_too_short",
			Message: fmt.Sprintf("Code must be at least %d characters", MinCodeLength),
		}
	}
	if len(r.Code) > MaxCodeLength {
		return &ErrorResponse{
			Code:    "code_too_long",
			Message: fmt.Sprintf("Code must not exceed %d characters", MaxCodeLength),
		}
	}

	if r.Language == "" {
		r.Language = LanguageAuto
	}
	r.Language = CodeLanguage(strings.ToLower(string(r.Language)))
	if resolved := ResolveLanguage(string(r.Language)); resolved != LanguageAuto {
		r.Language = resolved
	}
	if r.Language != LanguageAuto && !SupportedLanguages[r.Language] {
		return &ErrorResponse{
			Code:    "unsupported_language",
			Message: "Language not supported. Use auto or one of: csharp, cpp, javascript, typescript, python, gdscript, lua, hlsl, glsl",
		}
	}

	if r.AnalysisType == "" {
		r.AnalysisType = AnalysisExplain
	}
	r.AnalysisType = AnalysisType(strings.ToLower(string(r.AnalysisType)))
	if !ValidAnalysisTypes[r.AnalysisType] {
		return &ErrorResponse{
			Code:    "invalid_analysis_type",
			Message: "Analysis type must be one of: explain, optimize, document",
		}
	}

	if len(r.Context) > MaxContextLength {
		return &ErrorResponse{
			Code:    "context_too_long",
			Message: fmt.Sprintf("Context must not exceed %d characters", MaxContextLength),
		}
	}

	if r.DetailLevel == "" {
		r.DetailLevel = DefaultDetailLevel
	}
	r.DetailLevel = strings.ToLower(r.DetailLevel)
	if !ValidDetailLevels[r.DetailLevel] {
		return &ErrorResponse{
			Code:    "invalid_detail_level",
			Message: "Detail level must be one of: basic, medium, detailed",
		}
	}

	return nil
}

// CodeAnalysisRequest is the combined analysis surface used by the web
// client: one call naming the requested analysis kinds plus a free-form
// options bag, instead of one endpoint per kind.
type CodeAnalysisRequest struct {
	Code          string         `json:"code"`
	Language      string         `json:"language"`
	AnalysisTypes []string       `json:"analysis_types"`
	Options       map[string]any `json:"options"`
}

func (r *CodeAnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{
			Code:    "missing_code",
			Message: "Code field is required",
		}
	}
	if len(r.Code) > MaxCodeLength {
		return &ErrorResponse{
			Code:    "code_too_long",
			Message: fmt.Sprintf("Code must not exceed %d characters", MaxCodeLength),
		}
	}
	if r.Options == nil {
		r.Options = map[string]any{}
	}
	return nil
}

// ResolvedLanguage maps the wire language (aliases like c# or py included)
// onto a supported value, falling back to auto for anything unrecognized.
func (r *CodeAnalysisRequest) ResolvedLanguage() CodeLanguage {
	return ResolveLanguage(strings.ToLower(strings.TrimSpace(r.Language)))
}

// StringOption reads a string-valued entry from the options bag.
func (r *CodeAnalysisRequest) StringOption(key string) string {
	if v, ok := r.Options[key].(string); ok {
		return v
	}
	return ""
}

// FocusAreasOption reads the focus_areas option as a string list.
func (r *CodeAnalysisRequest) FocusAreasOption() []string {
	raw, ok := r.Options["focus_areas"].([]any)
	if !ok {
		return nil
	}
	var areas []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			areas = append(areas, s)
		}
	}
	return areas
}

// DetectLanguageRequest carries a bare snippet for language detection.
type DetectLanguageRequest struct {
	Code string `json:"code"`
}

func (r *DetectLanguageRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{
			Code:    "missing_code",
			Message: "Code field is required",
		}
	}
	if len(r.Code) > MaxCodeLength {
		return &ErrorResponse{
			Code:    "code_too_long",
			Message: fmt.Sprintf("Code must not exceed %d characters", MaxCodeLength),
		}
	}
	return nil
}

// MetricsRequest carries a snippet for lexical metric computation.
type MetricsRequest struct {
	Code     string       `json:"code"`
	Language CodeLanguage `json:"language,omitempty"`
}

func (r *MetricsRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{
			Code:    "missing_code",
			Message: "Code field is required",
		}
	}
	if len(r.Code) > MaxCodeLength {
		return &ErrorResponse{
			Code:    "code_too_long",
			Message: fmt.Sprintf("Code must not exceed %d characters", MaxCodeLength),
		}
	}
	if r.Language == "" {
		r.Language = LanguageAuto
	}
	return nil
}

// ConfigTestRequest carries an ad-hoc provider configuration to verify
// before the user commits it. The credential is used once and discarded.
type ConfigTestRequest struct {
	Provider    string   `json:"provider"`
	APIKey      string   `json:"api_key"`
	Model       string   `json:"model"`
	BaseURL     string   `json:"base_url,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

func (r *ConfigTestRequest) Validate() error {
	if strings.TrimSpace(r.Provider) == "" {
		return &ErrorResponse{Code: "missing_provider", Message: "Provider field is required"}
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return &ErrorResponse{Code: "missing_api_key", Message: "API key field is required"}
	}
	if strings.TrimSpace(r.Model) == "" {
		return &ErrorResponse{Code: "missing_model", Message: "Model field is required"}
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return &ErrorResponse{Code: "invalid_temperature", Message: "Temperature must be between 0 and 2"}
	}
	if r.MaxTokens != nil && (*r.MaxTokens < 1 || *r.MaxTokens > 8192) {
		return &ErrorResponse{Code: "invalid_max_tokens", Message: "Max tokens must be between 1 and 8192"}
	}
	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return &ErrorResponse{Code: "invalid_top_p", Message: "Top-p must be between 0 and 1"}
	}
	return nil
}

// FeedbackRequest records a thumbs-up/down on a previously returned result.
type FeedbackRequest struct {
	RequestID  string `json:"request_id"`
	IsPositive *bool  `json:"is_positive"`
}

func (r *FeedbackRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" {
		return &ErrorResponse{Code: "missing_request_id", Message: "Request ID field is required"}
	}
	if r.IsPositive == nil {
		return &ErrorResponse{Code: "missing_is_positive", Message: "is_positive field is required"}
	}
	return nil
}
