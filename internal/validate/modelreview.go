package validate

import (
	"context"
	"encoding/json"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/founder-pl/br-doc-generator/internal/llm"
	"github.com/founder-pl/br-doc-generator/internal/prompt"
)

type modelReviewIssue struct {
	Severity   string `json:"severity"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	Suggestion string `json:"suggestion"`
}

type modelReviewResponse struct {
	Score  float64             `json:"score"`
	Issues []modelReviewIssue `json:"issues"`
}

// ModelReview is the optional fourth pipeline stage: it asks an LLM chain
// for a holistic review and folds the model's own issues in, but per
// spec.md §4.C6 it never fails the stage outright unless the model
// itself reports a severity=error issue — a malformed or unreachable
// model response degrades to a single warning instead.
func ModelReview(ctx context.Context, chain *llm.Chain, vctx *Context) Result {
	stage := "model_review"
	now := time.Now()

	pt, err := prompt.Get().GetCategory("model_review")
	if err != nil {
		return Result{
			Valid:       true,
			Score:       1.0,
			Stage:       stage,
			ValidatedAt: now,
		}
	}
	userPrompt, err := prompt.RenderUserPrompt(pt, map[string]interface{}{"Content": vctx.Content})
	if err != nil {
		return Result{
			Valid:       true,
			Score:       1.0,
			Stage:       stage,
			ValidatedAt: now,
		}
	}

	resp, err := chain.Generate(ctx, llm.Request{
		Prompt:       userPrompt,
		SystemPrompt: pt.SystemPrompt,
		Temperature:  0.2,
		MaxTokens:    1024,
	})
	if err != nil {
		return Result{
			Valid: true,
			Issues: []Issue{{
				Severity: SeverityWarning,
				Code:     "MODEL_REVIEW_UNAVAILABLE",
				Message:  "model review could not be completed: " + err.Error(),
			}},
			Score:       1.0,
			Stage:       stage,
			ValidatedAt: now,
		}
	}

	repaired, err := jsonrepair.RepairJSON(resp.Content)
	if err != nil {
		repaired = resp.Content
	}

	var parsed modelReviewResponse
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return Result{
			Valid: true,
			Issues: []Issue{{
				Severity: SeverityWarning,
				Code:     "MODEL_REVIEW_UNPARSEABLE",
				Message:  "model review response was not valid JSON",
			}},
			Score:       1.0,
			Stage:       stage,
			ValidatedAt: now,
		}
	}

	var issues []Issue
	valid := true
	for _, mi := range parsed.Issues {
		sev := Severity(mi.Severity)
		switch sev {
		case SeverityError:
			valid = false
		case SeverityWarning, SeverityInfo:
		default:
			sev = SeverityInfo
		}
		issues = append(issues, Issue{
			Severity:   sev,
			Code:       mi.Code,
			Message:    mi.Message,
			Location:   mi.Location,
			Suggestion: mi.Suggestion,
		})
	}

	score := clampScore(parsed.Score)
	if parsed.Score == 0 && len(issues) == 0 {
		score = 1.0
	}

	return Result{
		Valid:       valid,
		Issues:      issues,
		Score:       score,
		Stage:       stage,
		ValidatedAt: now,
	}
}
