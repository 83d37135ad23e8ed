// Package collab declares the boundary this module stops at: every
// interface here names a collaborator spec.md §1 puts out of scope
// (authoring legal text, OCR ingestion, authentication, exports). None
// of them are implemented — the core depends only on the shapes its
// data sources and domain types already define.
package collab

import (
	"context"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

// AuthChecker is the pluggable authorization check spec.md §1 assumes
// exists upstream of every handler in internal/api.
type AuthChecker interface {
	HasScope(ctx context.Context, scope string) bool
}

// ProjectInputStore persists and retrieves the caller-supplied
// orchestrator.ProjectInput record across requests; this module only
// consumes an in-memory value of that shape.
type ProjectInputStore interface {
	Load(ctx context.Context, projectID string) (interface{}, error)
	Save(ctx context.Context, projectID string, input interface{}) error
}

// OCRExtractor turns a scanned invoice into the
// domain.DocumentReference shape (Path, ExcerptOCR, Confidence) this
// module's expense records already carry. Discovering new categorisation
// rules and authoring OCR models are both out of scope per spec.md §1.
type OCRExtractor interface {
	Extract(ctx context.Context, sourcePath string) (domain.DocumentReference, error)
}

// ExcelExporter renders a summary.ByCategory/ContractorRollup result set
// to a spreadsheet workbook.
type ExcelExporter interface {
	ExportXLSX(ctx context.Context, sheetName string, rows []map[string]interface{}) ([]byte, error)
}

// JPKExporter renders qualifying records into Poland's JPK
// (Jednolity Plik Kontrolny) structured tax-reporting XML format.
type JPKExporter interface {
	ExportJPK(ctx context.Context, fiscalYear int, expenses []domain.ExpenseRecord) ([]byte, error)
}

// KSeFExporter submits an invoice to Poland's KSeF
// (Krajowy System e-Faktur) national e-invoicing platform.
type KSeFExporter interface {
	SubmitInvoice(ctx context.Context, expense domain.ExpenseRecord) (referenceNumber string, err error)
}

// PDFStylesheetProvider supplies the actual visual typography for the
// three named presets internal/render resolves by name; exact glyph
// metrics, colors and margins beyond the renderer's placeholder defaults
// are this collaborator's responsibility (spec.md §1 Non-goals: "exact
// visual typography of rendered PDFs is delegated to a stylesheet
// collaborator").
type PDFStylesheetProvider interface {
	Stylesheet(presetName string) (bodyFontSize float64, marginPoints float64, err error)
}
