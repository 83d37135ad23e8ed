package validate

import (
	"context"
	"testing"
)

func TestPipelineSkipsModelReviewWhenChainNil(t *testing.T) {
	body := `# Karta projektu B+R

## Harmonogram

NIP: 526-000-12-46
Rok podatkowy: 2025
Koszty wynagrodzeń wyniosły 120 000,00 zł.
`
	vctx := NewContext(body, DocProjectCard, "p1", 2025)
	Pipeline(context.Background(), vctx, nil)

	if len(vctx.Results) != 3 {
		t.Fatalf("expected 3 stage results with nil chain, got %d", len(vctx.Results))
	}
	stages := []string{vctx.Results[0].Stage, vctx.Results[1].Stage, vctx.Results[2].Stage}
	want := []string{"structure", "legal", "financial"}
	for i, s := range want {
		if stages[i] != s {
			t.Errorf("stage %d = %q, want %q", i, stages[i], s)
		}
	}
}

func TestPipelineNeverShortCircuitsOnWarnings(t *testing.T) {
	body := `# Karta projektu B+R

## Harmonogram

Treść z ostrzeżeniami ale bez błędów krytycznych, dotyczy wynagrodzeń i kosztów projektu badawczego.
`
	vctx := NewContext(body, DocProjectCard, "p1", 2025)
	Pipeline(context.Background(), vctx, nil)
	if len(vctx.Results) != 3 {
		t.Fatalf("expected all 3 stages to run even with warnings, got %d", len(vctx.Results))
	}
}

func TestFinalIsConjunctionOfStageValidity(t *testing.T) {
	vctx := NewContext("x", DocProjectCard, "p1", 2025)
	vctx.Append(Result{Valid: true, Score: 1.0, Stage: "structure"})
	vctx.Append(Result{Valid: false, Score: 0.5, Stage: "legal"})
	final := Final(vctx)
	if final.Valid {
		t.Error("expected overall invalid when one stage is invalid")
	}
	if final.Score != 0.75 {
		t.Errorf("expected mean score 0.75, got %v", final.Score)
	}
}

func TestFinalWithNoStagesIsValidWithZeroDivideGuard(t *testing.T) {
	vctx := NewContext("x", DocProjectCard, "p1", 2025)
	final := Final(vctx)
	if !final.Valid {
		t.Error("expected valid=true when no stages ran")
	}
	if final.Score != 0 {
		t.Errorf("expected score 0 when no stages ran, got %v", final.Score)
	}
}
