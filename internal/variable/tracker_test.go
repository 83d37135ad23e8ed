package variable

import "testing"

func TestTrackAssignsDenseOrdinals(t *testing.T) {
	tr := New("proj-1")
	ref1 := tr.Track("total_gross", "1 000 zł", "expenses_summary", "", "")
	ref2 := tr.Track("worker_hours", 40.5, "timesheet_summary", "worker/jan", "")

	if ref1 != "[^1]" || ref2 != "[^2]" {
		t.Fatalf("got refs %q, %q", ref1, ref2)
	}
}

func TestVerificationURLInvoiceVsProject(t *testing.T) {
	tr := New("proj-1")
	tr.Track("gross", 100, "expenses_by_category", "category/materials", "")
	tr.Track("amount", 50, "expenses_by_category", "gross", "inv-42")

	records := tr.Records()
	if got := records[0].VerificationURL("proj-1"); got != "/api/project/proj-1/variable/expenses_by_category/category/materials" {
		t.Errorf("project URL = %q", got)
	}
	if got := records[1].VerificationURL("proj-1"); got != "/api/invoice/inv-42/variable/gross" {
		t.Errorf("invoice URL = %q", got)
	}
}

func TestFootnotesSectionEmptyWhenNoRecords(t *testing.T) {
	tr := New("proj-1")
	if got := tr.FootnotesSection(); got != "" {
		t.Errorf("expected empty footnotes section, got %q", got)
	}
}

func TestVerificationTableTruncatesLongValues(t *testing.T) {
	tr := New("proj-1")
	long := "this value is considerably longer than thirty characters"
	tr.Track("note", long, "expenses_summary", "", "")

	table := tr.VerificationTable()
	if len(table) == 0 {
		t.Fatal("expected non-empty table")
	}
	if containsFullString(table, long) {
		t.Error("expected long value to be truncated in verification table")
	}
}

func containsFullString(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
