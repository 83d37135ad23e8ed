package domain

import "time"

// ExpenseStatus is the lifecycle state of an ExpenseRecord.
type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "draft"
	ExpenseConfirmed ExpenseStatus = "confirmed"
	ExpenseArchived  ExpenseStatus = "archived"
)

// DocumentReference points at a scanned/ingested source document for an
// expense, typically produced by an OCR ingestion step (out of scope per
// spec.md §1 — this is only the shape the core consumes).
type DocumentReference struct {
	Path       string  `json:"path"`
	ExcerptOCR string  `json:"excerpt_ocr,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ExpenseRecord mirrors the read-model shape produced by the
// expenses_summary / expenses_by_category data sources (§4.C2).
type ExpenseRecord struct {
	InvoiceNumber   string            `json:"invoice_number"`
	InvoiceDate     time.Time         `json:"invoice_date"`
	VendorName      string            `json:"vendor_name"`
	VendorNIP       string            `json:"vendor_nip"`
	Net             Money             `json:"net"`
	VAT             Money             `json:"vat"`
	Gross           Money             `json:"gross"`
	Currency        string            `json:"currency"`
	Category        CostCategory      `json:"category"`
	BRQualified     bool              `json:"br_qualified"`
	DeductionRate   float64           `json:"deduction_rate"`
	Justification   string            `json:"justification,omitempty"`
	Status          ExpenseStatus     `json:"status"`
	Document        DocumentReference `json:"document,omitempty"`
}

// Deduction returns Gross * DeductionRate when the expense is qualified,
// zero otherwise.
func (e ExpenseRecord) Deduction() Money {
	if !e.BRQualified {
		return 0
	}
	return e.Gross.Mul(e.DeductionRate)
}

// RevenueRecord mirrors the read-model shape produced by the revenues
// data source (§4.C2).
type RevenueRecord struct {
	InvoiceNumber  string    `json:"invoice_number"`
	InvoiceDate    time.Time `json:"invoice_date"`
	ClientName     string    `json:"client_name"`
	Gross          Money     `json:"gross"`
	Net            Money     `json:"net"`
	Currency       string    `json:"currency"`
	IPQualified    bool      `json:"ip_qualified"`
	IPDescription  string    `json:"ip_description,omitempty"`
}
