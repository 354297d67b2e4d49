package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
	"devpal/backend/internal/utils"
)

// issueSuggestionRules map known issue phrasings from the explain pipeline
// onto the severity-tagged suggestions the web client renders. Matching is
// case-insensitive substring containment; the first matching rule wins.
var issueSuggestionRules = []struct {
	keywords   []string
	suggestion models.AnalysisSuggestion
}{
	{
		keywords: []string{"transform.translate", "physics conflict", "movement conflict"},
		suggestion: models.AnalysisSuggestion{
			Type:        "warning",
			Severity:    "high",
			Title:       "Movement method conflict",
			Description: "Use Rigidbody.MovePosition() instead of transform.Translate() to stay consistent with the physics engine",
		},
	},
	{
		keywords: []string{"infinite jump", "ground check", "ground detection"},
		suggestion: models.AnalysisSuggestion{
			Type:        "warning",
			Severity:    "medium",
			Title:       "Missing ground check",
			Description: "Add a ground check, such as a raycast or collision test, before allowing a jump",
		},
	},
	{
		keywords: []string{"null"},
		suggestion: models.AnalysisSuggestion{
			Type:        "error",
			Severity:    "high",
			Title:       "Null reference risk",
			Description: "Add a null check in Start(), for example: if (rb == null) Debug.LogError(\"Missing Rigidbody component\")",
		},
	},
	{
		keywords: []string{"hardcoded", "hard-coded"},
		suggestion: models.AnalysisSuggestion{
			Type:        "improvement",
			Severity:    "low",
			Title:       "Hardcoded values",
			Description: "Expose tuning values as public fields, for example: public float jumpForce = 10f",
		},
	},
}

// CodeAnalysisHandler serves the combined analysis endpoint the web client
// calls. The AI-backed path runs only when the options carry a custom
// prompt; without one there is nothing to run and the response reports
// failed with no results.
func (h *AnalyzeHandler) CodeAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CodeAnalysisRequest](r)

	analysisID := generateRequestID()

	var results []models.AnalysisResult
	if customPrompt := req.StringOption("custom_prompt"); customPrompt != "" {
		detailLevel := req.StringOption("detail_level")
		if detailLevel == "" {
			detailLevel = models.DefaultDetailLevel
		}
		includeSuggestions := true
		if v, ok := req.Options["include_comments"].(bool); ok {
			includeSuggestions = v
		}

		analyzeReq := &models.AnalyzeRequest{
			Code:               req.Code,
			Language:           req.ResolvedLanguage(),
			AnalysisType:       models.AnalysisExplain,
			Context:            customPrompt,
			FocusAreas:         req.FocusAreasOption(),
			IncludeSuggestions: &includeSuggestions,
			DetailLevel:        detailLevel,
			RequestID:          analysisID,
		}

		response := h.service.Analyze(r.Context(), analyzeReq)
		if response.Success {
			results = append(results, qualityReviewResult(req.Code, response))
		} else {
			results = append(results, analysisErrorResult())
		}
	}

	status := "completed"
	if len(results) == 0 {
		status = "failed"
		results = []models.AnalysisResult{}
	}

	utils.JSON(w, http.StatusOK, models.CodeAnalysisResponse{
		ID:        analysisID,
		Status:    status,
		Results:   results,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// qualityReviewResult flattens an explain response into one renderable
// section: markdown content, tagged suggestions and the line-numbered
// snippet the suggestions refer to.
func qualityReviewResult(code string, response *models.AnalyzeResponse) models.AnalysisResult {
	result := models.AnalysisResult{
		Type:        "quality_review",
		Title:       "Code quality review",
		Suggestions: []models.AnalysisSuggestion{},
		CodeBlocks:  []string{utils.AddLineNumbers(code)},
	}

	if exp := response.Explanation; exp != nil {
		var content strings.Builder
		content.WriteString("## Overview\n")
		content.WriteString(exp.Overview)
		content.WriteString("\n\n## Detailed analysis\n")
		content.WriteString(utils.StripFences(exp.DetailedExplanation))
		content.WriteString("\n\n## Key concepts\n")
		content.WriteString(strings.Join(exp.KeyConcepts, ", "))
		content.WriteString("\n\n## Complexity analysis\n")
		content.WriteString(exp.ComplexityAnalysis)
		result.Content = content.String()

		for i, issue := range exp.PotentialIssues {
			result.Suggestions = append(result.Suggestions, suggestionForIssue(issue, i))
		}
	}

	for _, general := range response.GeneralSuggestions {
		result.Suggestions = append(result.Suggestions, models.AnalysisSuggestion{
			Type:        "improvement",
			Severity:    "low",
			Title:       "Improvement suggestion",
			Description: general,
		})
	}

	if response.CodeQualityScore != nil {
		result.Content += fmt.Sprintf("\n\n## Code quality score\n%d/100", *response.CodeQualityScore)
	}

	return result
}

func suggestionForIssue(issue string, index int) models.AnalysisSuggestion {
	lowered := strings.ToLower(issue)
	for _, rule := range issueSuggestionRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.suggestion
			}
		}
	}

	description := issue
	if len(description) > 100 {
		description = description[:100] + "..."
	}
	return models.AnalysisSuggestion{
		Type:        "warning",
		Severity:    "medium",
		Title:       fmt.Sprintf("Code issue %d", index+1),
		Description: description,
	}
}

func analysisErrorResult() models.AnalysisResult {
	return models.AnalysisResult{
		Type:    "error",
		Title:   "Analysis failed",
		Content: "An error occurred during code analysis, check the code format or retry later.",
		Suggestions: []models.AnalysisSuggestion{{
			Type:        "error",
			Severity:    "high",
			Title:       "Analysis error",
			Description: "The analysis could not be completed, make sure the code is well formed",
		}},
		CodeBlocks: []string{},
	}
}
