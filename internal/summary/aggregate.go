// Package summary implements the pure aggregation functions consumed by
// the generator's substitution context (spec.md §4.C10). None of these
// functions mutate their input slices.
package summary

import (
	"sort"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

// CategoryTotal is one row of the by-category rollup.
type CategoryTotal struct {
	Count     int          `json:"count"`
	Gross     domain.Money `json:"gross"`
	Deduction domain.Money `json:"deduction"`
}

// ByCategory groups expenses by their cost category.
func ByCategory(expenses []domain.ExpenseRecord) map[domain.CostCategory]CategoryTotal {
	out := make(map[domain.CostCategory]CategoryTotal)
	for _, e := range expenses {
		t := out[e.Category]
		t.Count++
		t.Gross = t.Gross.Add(e.Gross)
		t.Deduction = t.Deduction.Add(e.Deduction())
		out[e.Category] = t
	}
	return out
}

// Totals sums gross, qualified-gross and deduction across all expenses.
func Totals(expenses []domain.ExpenseRecord) (gross, qualifiedGross, totalDeduction domain.Money) {
	for _, e := range expenses {
		gross = gross.Add(e.Gross)
		if e.BRQualified {
			qualifiedGross = qualifiedGross.Add(e.Gross)
		}
		totalDeduction = totalDeduction.Add(e.Deduction())
	}
	return gross, qualifiedGross, totalDeduction
}

// MonthlyRow is one ordered row of the monthly time-tracking breakdown.
type MonthlyRow struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Worker string  `json:"worker"`
	Hours  float64 `json:"hours"`
}

// MonthlyBreakdown groups time entries by (year, month, worker) and
// returns the rows ordered by year, then month, then worker name.
func MonthlyBreakdown(entries []domain.DailyTimeEntry) []MonthlyRow {
	type key struct {
		year, month int
		worker      string
	}
	totals := make(map[key]float64)
	for _, e := range entries {
		k := key{e.Date.Year(), int(e.Date.Month()), e.Worker}
		totals[k] += e.Hours
	}
	rows := make([]MonthlyRow, 0, len(totals))
	for k, hours := range totals {
		rows = append(rows, MonthlyRow{Year: k.year, Month: k.month, Worker: k.worker, Hours: hours})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Worker < rows[j].Worker
	})
	return rows
}

// ContractorRow is one ordered row of the contractor rollup.
type ContractorRow struct {
	Vendor string       `json:"vendor"`
	NIP    string       `json:"nip"`
	Total  domain.Money `json:"total"`
	Count  int          `json:"count"`
}

// ContractorRollup groups expenses by vendor NIP, excluding any vendor
// whose NIP (digit-only normalised) equals the reporting company's own
// NIP, and returns rows ordered by descending total.
func ContractorRollup(expenses []domain.ExpenseRecord, companyNIP string) []ContractorRow {
	companyDigits := domain.NormalizeDigits(companyNIP)

	type agg struct {
		vendor string
		nip    string
		total  domain.Money
		count  int
	}
	byNIP := make(map[string]*agg)
	var order []string
	for _, e := range expenses {
		digits := domain.NormalizeDigits(e.VendorNIP)
		if digits != "" && digits == companyDigits {
			continue
		}
		a, ok := byNIP[digits]
		if !ok {
			a = &agg{vendor: e.VendorName, nip: e.VendorNIP}
			byNIP[digits] = a
			order = append(order, digits)
		}
		a.total = a.total.Add(e.Gross)
		a.count++
	}

	rows := make([]ContractorRow, 0, len(order))
	for _, k := range order {
		a := byNIP[k]
		rows = append(rows, ContractorRow{Vendor: a.vendor, NIP: a.nip, Total: a.total, Count: a.count})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}
