// Package variable implements the per-request verifiable-variable tracker
// (spec.md §4.C3): every scalar pulled into a generated document can be
// traced back to the data source, path and (optionally) invoice it came
// from via a Markdown footnote.
package variable

import (
	"fmt"
	"strings"
	"sync"
)

// Record is one tracked variable occurrence.
type Record struct {
	Ordinal   int
	Name      string
	Value     interface{}
	Source    string
	Path      string
	InvoiceID string
}

// VerificationURL synthesises the URL a reader can follow to verify this
// record's value, per spec.md §4.C3.
func (r Record) VerificationURL(projectID string) string {
	if r.InvoiceID != "" {
		if r.Path != "" {
			return fmt.Sprintf("/api/invoice/%s/variable/%s", r.InvoiceID, r.Path)
		}
		return fmt.Sprintf("/api/invoice/%s/variable", r.InvoiceID)
	}
	if r.Path != "" {
		return fmt.Sprintf("/api/project/%s/variable/%s/%s", projectID, r.Source, r.Path)
	}
	return fmt.Sprintf("/api/project/%s/variable/%s", projectID, r.Source)
}

// Tracker accumulates Records for exactly one document generation. It is
// never shared across concurrent generations (spec.md §4.C3) — callers
// must construct a fresh Tracker per request.
type Tracker struct {
	mu        sync.Mutex
	projectID string
	records   []Record
}

// New returns a Tracker scoped to a single project generation.
func New(projectID string) *Tracker {
	return &Tracker{projectID: projectID}
}

// Track registers a tracked value and returns its Markdown footnote
// reference ("[^n]"). invoiceID may be empty for project-scoped values.
func (t *Tracker) Track(name string, value interface{}, source, path, invoiceID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ordinal := len(t.records) + 1
	t.records = append(t.records, Record{
		Ordinal:   ordinal,
		Name:      name,
		Value:     value,
		Source:    source,
		Path:      path,
		InvoiceID: invoiceID,
	})
	return fmt.Sprintf("[^%d]", ordinal)
}

// Records returns a copy of the tracked records, in tracking order.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// FootnotesSection renders the trailing "Przypisy źródłowe" block every
// generated document ends with (spec.md §4.C3).
func (t *Tracker) FootnotesSection() string {
	records := t.Records()
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("---\n\n## Przypisy źródłowe\n\n")
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = r.Source
		}
		b.WriteString(fmt.Sprintf("[^%d]: Źródło: [%s](%s)\n", r.Ordinal, name, r.VerificationURL(t.projectID)))
	}
	return b.String()
}

// VerificationTable renders the tracked records as a Markdown table,
// truncating the value column to 30 characters with an ellipsis.
func (t *Tracker) VerificationTable() string {
	records := t.Records()
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| # | Nazwa | Wartość | Źródło |\n")
	b.WriteString("|---|-------|---------|--------|\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			r.Ordinal, r.Name, truncate(fmt.Sprint(r.Value), 30), r.VerificationURL(t.projectID)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
