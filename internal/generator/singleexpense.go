package generator

import (
	"math"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

const ocrExcerptMaxChars = 500

// PrefillSingleExpense builds the additional substitution-context entries
// a single-expense document needs: invoice identity, the Polish category
// display name, the statutory deduction rate and computed amount, and
// (when available) a truncated OCR excerpt with its confidence rounded to
// one decimal place (spec.md §4.C5).
func PrefillSingleExpense(e domain.ExpenseRecord) map[string]interface{} {
	out := map[string]interface{}{
		"invoice_number": e.InvoiceNumber,
		"invoice_date":   e.InvoiceDate,
		"vendor_name":    e.VendorName,
		"vendor_nip":     e.VendorNIP,
		"category_name":  domain.CategoryDisplayName[e.Category],
		"deduction_rate": e.DeductionRate,
		"deduction":      e.Deduction(),
		"gross":          e.Gross,
	}

	if e.Document.ExcerptOCR != "" {
		out["ocr_excerpt"] = truncateRunes(e.Document.ExcerptOCR, ocrExcerptMaxChars)
		out["ocr_confidence"] = math.Round(e.Document.Confidence*10) / 10
	}

	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
