package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/datasource"
	"github.com/founder-pl/br-doc-generator/internal/generator"
	"github.com/founder-pl/br-doc-generator/internal/render"
	"github.com/founder-pl/br-doc-generator/internal/template"
	"github.com/founder-pl/br-doc-generator/internal/validate"
	"github.com/founder-pl/br-doc-generator/internal/version"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, string) {
	t.Helper()
	reg := template.NewRegistry()
	err := reg.Register(
		"project_card",
		"card",
		"# Karta projektu {{project_name}}\n\nNIP: {{company_nip}}\nRok podatkowy: {{fiscal_year}}\nCałkowity koszt kwalifikowany: {{total_gross}}.\nKoszty wynagrodzeń oraz materiałów rozliczono zgodnie z ewidencją.",
		nil, "", "", false,
	)
	if err != nil {
		t.Fatalf("registering template: %v", err)
	}

	sources := datasource.NewRegistry()
	gen := generator.New(reg, sources, nil)

	root := t.TempDir()
	store, err := version.NewStore(root)
	if err != nil {
		t.Fatalf("creating version store: %v", err)
	}

	return New(gen, nil, store), root
}

func TestGenerateCommitsMarkdownAndClassifiesStatus(t *testing.T) {
	orch, root := newTestOrchestrator(t)

	pi := ProjectInput{
		ProjectID:  "p1",
		CompanyNIP: "526-000-12-46",
		FiscalYear: 2025,
		TemplateID: "project_card",
		DocType:    validate.DocProjectCard,
		Params: map[string]interface{}{
			"project_name": "System X",
			"company_nip":  "526-000-12-46",
			"fiscal_year":  2025,
		},
	}
	opts := Options{
		MaxIterations: 0,
		ArtifactPath:  "projects/p1/card.md",
		CommitMessage: "initial draft",
	}

	result, err := orch.Generate(context.Background(), pi, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.MarkdownVersion == "" {
		t.Error("expected a non-empty markdown version tag")
	}
	if result.Status == "" {
		t.Error("expected a classified status")
	}

	committed, err := os.ReadFile(filepath.Join(root, "projects/p1/.versions", "card_"+result.MarkdownVersion+".md"))
	if err != nil {
		t.Fatalf("expected committed content on disk: %v", err)
	}
	if !strings.Contains(string(committed), "System X") {
		t.Errorf("expected committed markdown to contain generated content, got %q", committed)
	}
}

func TestGenerateRejectsInvalidNIPBeforeAnyFetch(t *testing.T) {
	orch, _ := newTestOrchestrator(t)
	pi := ProjectInput{
		ProjectID:  "p1",
		CompanyNIP: "1234567890", // fails the mod-11 checksum
		TemplateID: "project_card",
		DocType:    validate.DocProjectCard,
		FiscalYear: 2025,
		Params:     map[string]interface{}{"project_name": "X"},
	}
	opts := Options{ArtifactPath: "p.md", CommitMessage: "m"}

	_, err := orch.Generate(context.Background(), pi, opts)
	if err == nil {
		t.Fatal("expected an error for an invalid NIP")
	}
	if !strings.Contains(err.Error(), "INVALID_NIP") {
		t.Errorf("expected an INVALID_NIP error, got %v", err)
	}
}

func TestGenerateSkipsRefinementWhenMaxIterationsZero(t *testing.T) {
	orch, _ := newTestOrchestrator(t)
	pi := ProjectInput{
		ProjectID:  "p1",
		TemplateID: "project_card",
		DocType:    validate.DocProjectCard,
		FiscalYear: 2025,
		Params:     map[string]interface{}{"project_name": "X"},
	}
	opts := Options{MaxIterations: 0, ArtifactPath: "p.md", CommitMessage: "m"}

	result, err := orch.Generate(context.Background(), pi, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations != 0 {
		t.Errorf("expected zero iterations, got %d", result.Iterations)
	}
}

func TestGenerateRendersAndCommitsPDFSibling(t *testing.T) {
	orch, root := newTestOrchestrator(t)
	pi := ProjectInput{
		ProjectID:  "p1",
		TemplateID: "project_card",
		DocType:    validate.DocProjectCard,
		FiscalYear: 2025,
		Params:     map[string]interface{}{"project_name": "X"},
	}
	opts := Options{
		ArtifactPath:  "projects/p1/card.md",
		CommitMessage: "m",
		RenderPDF:     true,
		StylePreset:   render.StylesheetMinimal,
	}

	result, err := orch.Generate(context.Background(), pi, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.PDFPath != "projects/p1/card.pdf" {
		t.Errorf("expected pdf sibling path, got %q", result.PDFPath)
	}
	if result.PDFVersion == "" {
		t.Error("expected a non-empty pdf version tag")
	}

	pdfBytes, err := os.ReadFile(filepath.Join(root, "projects/p1/.versions", "card_"+result.PDFVersion+".pdf"))
	if err != nil {
		t.Fatalf("expected committed pdf on disk: %v", err)
	}
	if !strings.HasPrefix(string(pdfBytes), "%PDF-1.7") {
		t.Error("expected committed artifact to be a PDF")
	}
}

func TestClassifyBuckets(t *testing.T) {
	cases := []struct {
		result validate.Result
		want   Status
	}{
		{validate.Result{Valid: false, Score: 0.9}, StatusFailed},
		{validate.Result{Valid: true, Score: 0.5}, StatusWarning},
		{validate.Result{Valid: true, Score: 0.8}, StatusPassed},
	}
	for _, c := range cases {
		if got := classify(c.result); got != c.want {
			t.Errorf("classify(%+v) = %q, want %q", c.result, got, c.want)
		}
	}
}

func TestPdfSiblingPathSwapsExtension(t *testing.T) {
	if got := pdfSiblingPath("a/b/card.md"); got != "a/b/card.pdf" {
		t.Errorf("got %q", got)
	}
}

func TestDefaultExpenseArtifactPathMatchesNamingConvention(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	path := DefaultExpenseArtifactPath("p1", "FV-001", now)
	if !strings.HasPrefix(path, "p1/BR_DOC_20260305_FV-001_") {
		t.Errorf("unexpected path %q", path)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("expected .md suffix, got %q", path)
	}
}

func TestDefaultSummaryArtifactPathMatchesNamingConvention(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := DefaultSummaryArtifactPath("p1", now); got != "p1/BR_SUMMARY_20260305.md" {
		t.Errorf("got %q", got)
	}
}
