package generator

import (
	"context"
	"regexp"
	"strings"

	"github.com/founder-pl/br-doc-generator/internal/llm"
	"github.com/founder-pl/br-doc-generator/internal/prompt"
	"github.com/founder-pl/br-doc-generator/internal/validate"
)

// DefaultMaxIterations is the refinement loop's default iteration cap
// (spec.md §4.C5).
const DefaultMaxIterations = 3

const refinementMaxTokens = 8000

var numericLiteralRE = regexp.MustCompile(`-?\d[\d ]*[.,]?\d*`)

// RefinementEntry records the outcome of one refinement iteration.
type RefinementEntry struct {
	Iteration int    `json:"iteration"`
	Status    string `json:"status"` // success | skipped | failed | error
	Reason    string `json:"reason"`
}

// Refine iteratively asks the LLM chain to repair content against the
// issues produced by the validation pipeline, stopping when no issues
// remain, the model is unavailable, or maxIterations is exhausted. The
// supplied vctx carries the document's DocType/ProjectID/FiscalYear and
// NexusObserved; each iteration validates a fresh context built from
// them, and vctx itself is not modified.
func (g *Generator) Refine(ctx context.Context, content string, vctx *validate.Context, maxIterations int) (string, []RefinementEntry) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	var log []RefinementEntry
	current := content

	for i := 1; i <= maxIterations; i++ {
		issues := validateOnce(current, vctx)
		if len(issues) == 0 {
			break
		}

		if g.Chain == nil {
			log = append(log, RefinementEntry{Iteration: i, Status: "skipped", Reason: "no model configured"})
			break
		}

		next, err := g.refineOnce(ctx, current, issues)
		if err != nil {
			log = append(log, RefinementEntry{Iteration: i, Status: "error", Reason: err.Error()})
			continue
		}
		if next == "" {
			log = append(log, RefinementEntry{Iteration: i, Status: "failed", Reason: "model returned empty content"})
			continue
		}
		if !headingRE.MatchString(next) {
			log = append(log, RefinementEntry{Iteration: i, Status: "failed", Reason: "model response had no heading"})
			continue
		}
		if !preservesNumericLiterals(current, next) {
			log = append(log, RefinementEntry{Iteration: i, Status: "failed", Reason: "model response altered a numeric literal"})
			continue
		}

		current = next
		log = append(log, RefinementEntry{Iteration: i, Status: "success", Reason: ""})
	}

	return current, log
}

func validateOnce(content string, vctx *validate.Context) []validate.Issue {
	fresh := validate.NewContext(content, vctx.DocType, vctx.ProjectID, vctx.FiscalYear)
	fresh.NexusObserved = vctx.NexusObserved
	validate.Pipeline(context.Background(), fresh, nil)
	return fresh.Issues
}

func (g *Generator) refineOnce(ctx context.Context, content string, issues []validate.Issue) (string, error) {
	pt, err := prompt.Get().GetCategory("refinement")
	if err != nil {
		return "", err
	}
	userPrompt, err := prompt.RenderUserPrompt(pt, map[string]interface{}{
		"Issues":  issues,
		"Content": content,
	})
	if err != nil {
		return "", err
	}

	resp, err := g.Chain.Generate(ctx, llm.Request{
		Prompt:       userPrompt,
		SystemPrompt: pt.SystemPrompt,
		Temperature:  0.3,
		MaxTokens:    refinementMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// preservesNumericLiterals reports whether every numeric literal present
// in prior also appears in next — no amount may silently change.
func preservesNumericLiterals(prior, next string) bool {
	for _, lit := range numericLiteralRE.FindAllString(prior, -1) {
		if len(lit) < 2 {
			continue // bare single digits are too common to be meaningful amounts
		}
		if !strings.Contains(next, lit) {
			return false
		}
	}
	return true
}
