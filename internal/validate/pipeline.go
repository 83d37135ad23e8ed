package validate

import (
	"context"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/llm"
)

// Pipeline runs the ordered validation stages over ctx and returns the
// aggregated outcome. It never short-circuits on warnings: every
// configured stage always runs. modelChain may be nil, in which case the
// optional model_review stage is skipped entirely.
func Pipeline(ctx context.Context, vctx *Context, modelChain *llm.Chain) *Context {
	vctx.Append(Structure(vctx))
	vctx.Append(Legal(vctx))
	vctx.Append(Financial(vctx))
	if modelChain != nil {
		vctx.Append(ModelReview(ctx, modelChain, vctx))
	}
	return vctx
}

// Final summarises the executed stages: overall validity is the
// conjunction of every stage's validity, and the overall score is the
// arithmetic mean of the stages actually run.
func Final(vctx *Context) Result {
	valid := true
	var sum float64
	for _, r := range vctx.Results {
		if !r.Valid {
			valid = false
		}
		sum += r.Score
	}
	n := len(vctx.Results)
	if n == 0 {
		n = 1
	}
	return Result{
		Valid:       valid,
		Issues:      vctx.Issues,
		Score:       sum / float64(n),
		Stage:       "final",
		ValidatedAt: time.Now(),
	}
}
