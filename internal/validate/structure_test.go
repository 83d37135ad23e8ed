package validate

import "testing"

func TestStructureFlagsShortDocument(t *testing.T) {
	ctx := NewContext("# x\ntoo short", DocProjectCard, "p1", 2025)
	res := Structure(ctx)
	if res.Valid {
		t.Fatal("expected invalid for too-short document")
	}
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeDocTooShort {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s issue, got %+v", CodeDocTooShort, res.Issues)
	}
}

func TestStructurePassesCompleteProjectCard(t *testing.T) {
	body := `# Karta projektu B+R

## Harmonogram

Projekt trwa od 01.01.2025 do 31.12.2025.

NIP: 123-456-32-18
Rok podatkowy: 2025
Kwota: 120 000,00 zł

| Etap | Termin |
|------|--------|
| Start | 2025-01-01 |
`
	ctx := NewContext(body, DocProjectCard, "p1", 2025)
	res := Structure(ctx)
	for _, i := range res.Issues {
		if i.Severity == SeverityError {
			t.Errorf("unexpected error issue: %+v", i)
		}
	}
}

func TestStructureDetectsMissingSection(t *testing.T) {
	body := "# Karta projektu\n\nbrak wymaganej sekcji harmonogramu, ale tekst jest wystarczająco długi by przejść pierwszy test."
	ctx := NewContext(body, DocProjectCard, "p1", 2025)
	res := Structure(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeMissingSection {
			found = true
		}
	}
	if !found {
		t.Error("expected MISSING_SECTION issue for missing Harmonogram section")
	}
}

func TestStructureDetectsEmptySection(t *testing.T) {
	body := "# Tytuł dokumentu\n\n## Sekcja pusta\n\n## Kolejna sekcja\n\nTreść wystarczająco długa aby przejść test minimalnej długości dokumentu dla tego przypadku testowego."
	ctx := NewContext(body, DocBRAnnualSummary, "p1", 2025)
	res := Structure(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeEmptySections {
			found = true
		}
	}
	if !found {
		t.Error("expected EMPTY_SECTIONS issue")
	}
}
