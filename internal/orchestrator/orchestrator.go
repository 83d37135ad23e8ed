// Package orchestrator implements the single entry point tying every
// other component together (spec.md §4.C11): resolve data, aggregate
// summaries, generate a draft, validate it, refine if needed, commit to
// the version store and optionally render a PDF sibling.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/founder-pl/br-doc-generator/internal/domain"
	"github.com/founder-pl/br-doc-generator/internal/generator"
	"github.com/founder-pl/br-doc-generator/internal/llm"
	"github.com/founder-pl/br-doc-generator/internal/render"
	"github.com/founder-pl/br-doc-generator/internal/summary"
	"github.com/founder-pl/br-doc-generator/internal/validate"
	"github.com/founder-pl/br-doc-generator/internal/version"
)

// scoreThreshold is the minimum overall score a draft must reach before
// the refinement loop is skipped, and the minimum a "passed" result
// requires (spec.md §4.C11 step 5).
const scoreThreshold = 0.8

// ProjectInput is the caller-supplied record identifying what to
// generate and the raw records the summary aggregator reduces into
// substitution context.
type ProjectInput struct {
	ProjectID   string
	CompanyNIP  string
	FiscalYear  int
	TemplateID  string
	DocType     validate.DocumentType
	Params      map[string]interface{}
	Expenses    []domain.ExpenseRecord
	TimeEntries []domain.DailyTimeEntry
}

// Options controls one generate_documentation run.
type Options struct {
	UseModel      bool
	MaxIterations int
	RenderPDF     bool
	StylePreset   string
	ArtifactPath  string // Markdown's path in the version store; the PDF is committed as its sibling
	CommitMessage string
}

// Status is the coarse outcome bucket returned to the caller.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// Result is generate_documentation's structured return value (spec.md
// §4.C11 step 8).
type Result struct {
	Status          Status
	Score           float64
	Iterations      int
	MarkdownPath    string
	MarkdownVersion string
	PDFPath         string
	PDFVersion      string
	ValidationRuns  []validate.Result
	Issues          []validate.Issue
}

// Orchestrator wires the generator, validation pipeline, version store
// and renderer together, structurally grounded on the teacher's
// PipelineOrchestrator (check-existing -> extract -> validate -> store),
// with its injectable-dependency setters renamed to this domain's
// collaborators.
type Orchestrator struct {
	gen          *generator.Generator
	modelChain   *llm.Chain
	versionStore *version.Store
	paginator    render.Paginator
}

// New returns an Orchestrator. modelChain may be nil to disable model
// generation and refinement entirely.
func New(gen *generator.Generator, modelChain *llm.Chain, versionStore *version.Store) *Orchestrator {
	return &Orchestrator{
		gen:          gen,
		modelChain:   modelChain,
		versionStore: versionStore,
		paginator:    render.NewTextPaginator(),
	}
}

// SetVersionStore allows injecting a custom version store (e.g. for testing).
func (o *Orchestrator) SetVersionStore(s *version.Store) { o.versionStore = s }

// SetPaginator allows injecting a custom Paginator (e.g. for testing).
func (o *Orchestrator) SetPaginator(p render.Paginator) { o.paginator = p }

// buildAggregates reduces pi's raw records into the scalar context the
// generator's substitution pass consumes (spec.md §4.C10/§4.C11 step 2).
func buildAggregates(pi ProjectInput) map[string]interface{} {
	gross, qualifiedGross, totalDeduction := summary.Totals(pi.Expenses)
	rollup := summary.ContractorRollup(pi.Expenses, pi.CompanyNIP)
	monthly := summary.MonthlyBreakdown(pi.TimeEntries)
	byCategory := summary.ByCategory(pi.Expenses)

	var totalHours float64
	for _, row := range monthly {
		totalHours += row.Hours
	}

	return map[string]interface{}{
		"total_gross":       gross,
		"qualified_gross":   qualifiedGross,
		"total_deduction":   totalDeduction,
		"contractor_rollup": rollup,
		"monthly_breakdown": monthly,
		"by_category":       byCategory,
		"total_hours":       totalHours,
	}
}

// Generate runs the full eight-step pipeline. A project input carrying an
// invalid CompanyNIP is rejected unconditionally before any fetch happens
// (spec.md §4.C11's only unconditional-abort invariant); every other
// failure is recovered locally and surfaced through Result instead.
func (o *Orchestrator) Generate(ctx context.Context, pi ProjectInput, opts Options) (Result, error) {
	if pi.CompanyNIP != "" {
		if ok, msg := domain.ValidateNIP(pi.CompanyNIP); !ok {
			return Result{}, fmt.Errorf("INVALID_NIP: %s", msg)
		}
	}

	aggregates := buildAggregates(pi)

	draft, err := o.gen.Generate(ctx, pi.TemplateID, pi.ProjectID, pi.Params, aggregates, opts.UseModel)
	if err != nil {
		return Result{}, fmt.Errorf("generating draft: %w", err)
	}
	content := draft.Markdown

	vctx := validate.NewContext(content, pi.DocType, pi.ProjectID, pi.FiscalYear)
	validate.Pipeline(ctx, vctx, o.modelChainIfUsed(opts))
	final := validate.Final(vctx)

	iterations := 0
	if final.Score < scoreThreshold && opts.MaxIterations > 0 {
		refined, log := o.gen.Refine(ctx, content, vctx, opts.MaxIterations)
		iterations = len(log)
		content = refined

		vctx = validate.NewContext(content, pi.DocType, pi.ProjectID, pi.FiscalYear)
		validate.Pipeline(ctx, vctx, o.modelChainIfUsed(opts))
		final = validate.Final(vctx)
	}

	now := time.Now()
	mdVersion, err := o.versionStore.Commit(opts.ArtifactPath, []byte(content), opts.CommitMessage, now)
	if err != nil {
		return Result{}, fmt.Errorf("committing markdown: %w", err)
	}

	result := Result{
		Score:           final.Score,
		Iterations:      iterations,
		MarkdownPath:    opts.ArtifactPath,
		MarkdownVersion: mdVersion,
		ValidationRuns:  vctx.Results,
		Issues:          final.Issues,
	}

	if opts.RenderPDF {
		pdfPath, pdfVersion, err := o.renderAndCommitPDF(content, opts, now)
		if err != nil {
			return Result{}, fmt.Errorf("rendering pdf: %w", err)
		}
		result.PDFPath = pdfPath
		result.PDFVersion = pdfVersion
	}

	result.Status = classify(final)
	return result, nil
}

func (o *Orchestrator) modelChainIfUsed(opts Options) *llm.Chain {
	if opts.UseModel {
		return o.modelChain
	}
	return nil
}

func (o *Orchestrator) renderAndCommitPDF(markdown string, opts Options, now time.Time) (path, ver string, err error) {
	htmlContent, _, err := render.ToHTML(markdown)
	if err != nil {
		return "", "", fmt.Errorf("converting to html: %w", err)
	}
	style := render.ResolveStylesheet(opts.StylePreset)
	pdfBytes, err := o.paginator.Paginate(htmlContent, style)
	if err != nil {
		return "", "", fmt.Errorf("paginating pdf: %w", err)
	}
	pdfPath := pdfSiblingPath(opts.ArtifactPath)
	ver, err = o.versionStore.Commit(pdfPath, pdfBytes, opts.CommitMessage, now)
	if err != nil {
		return "", "", fmt.Errorf("committing pdf: %w", err)
	}
	return pdfPath, ver, nil
}

// DefaultExpenseArtifactPath builds the on-disk name spec.md §6 assigns
// per-expense documents: BR_DOC_<yyyymmdd>_<invoice_segment>_<short_id>.md
// under the project's version-store root. Callers that don't need a
// specific on-disk name may pass its result as Options.ArtifactPath.
func DefaultExpenseArtifactPath(projectID, invoiceSegment string, now time.Time) string {
	shortID := uuid.New().String()[:8]
	name := fmt.Sprintf("BR_DOC_%s_%s_%s.md", now.Format("20060102"), invoiceSegment, shortID)
	return filepath.Join(projectID, name)
}

// DefaultSummaryArtifactPath builds the on-disk name spec.md §6 assigns
// project summary documents: BR_SUMMARY_<yyyymmdd>.md.
func DefaultSummaryArtifactPath(projectID string, now time.Time) string {
	name := fmt.Sprintf("BR_SUMMARY_%s.md", now.Format("20060102"))
	return filepath.Join(projectID, name)
}

// pdfSiblingPath swaps the markdown artifact's extension for ".pdf"
// (spec.md §4.C11 step 7: "commit the PDF as a sibling").
func pdfSiblingPath(mdPath string) string {
	ext := filepath.Ext(mdPath)
	return strings.TrimSuffix(mdPath, ext) + ".pdf"
}

// classify buckets a final Result into the three statuses spec.md §4.C11
// step 8 names.
func classify(final validate.Result) Status {
	switch {
	case !final.Valid:
		return StatusFailed
	case final.Score >= scoreThreshold:
		return StatusPassed
	default:
		return StatusWarning
	}
}
