package validate

import "testing"

func TestLegalFlagsInvalidNIP(t *testing.T) {
	ctx := NewContext("Kontrahent posiada NIP 1234567890 oraz ponosi koszty wynagrodzeń pracowników B+R.", DocProjectCard, "p1", 2025)
	res := Legal(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeInvalidNIP {
			found = true
		}
	}
	if !found {
		t.Error("expected INVALID_NIP issue for bad checksum")
	}
}

func TestLegalAcceptsValidNIP(t *testing.T) {
	// 5260001246 is a valid NIP checksum.
	ctx := NewContext("Spółka NIP 5260001246 poniosła koszty wynagrodzeń pracowników działu badawczo-rozwojowego.", DocProjectCard, "p1", 2025)
	res := Legal(ctx)
	for _, i := range res.Issues {
		if i.Code == CodeInvalidNIP {
			t.Errorf("unexpected INVALID_NIP issue: %+v", i)
		}
	}
}

func TestLegalRequiresBRCategoryPhrase(t *testing.T) {
	ctx := NewContext("Ten dokument nie wspomina żadnej kategorii kosztów kwalifikowanych w ogóle, tylko ogólny tekst.", DocProjectCard, "p1", 2025)
	res := Legal(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeMissingBRCategory {
			found = true
		}
	}
	if !found {
		t.Error("expected MISSING_BR_CATEGORY issue")
	}
}

func TestLegalRequiresReferenceForFormalDocs(t *testing.T) {
	ctx := NewContext("Procedura dotyczy wynagrodzeń pracowników badawczo-rozwojowych bez żadnych odniesień do przepisów.", DocIPBoxProcedure, "p1", 2025)
	res := Legal(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeMissingLegalReference {
			found = true
		}
	}
	if !found {
		t.Error("expected MISSING_LEGAL_REFERENCE issue for formal document type")
	}
}

func TestLegalDoesNotRequireReferenceForInformalDocs(t *testing.T) {
	ctx := NewContext("Zestawienie kosztów wynagrodzeń pracowników za miesiąc bez odniesień do przepisów podatkowych.", DocExpenseRegistry, "p1", 2025)
	res := Legal(ctx)
	for _, i := range res.Issues {
		if i.Code == CodeMissingLegalReference {
			t.Error("did not expect MISSING_LEGAL_REFERENCE for non-formal document type")
		}
	}
}

func TestLegalFlagsInconsistentDates(t *testing.T) {
	ctx := NewContext("Koszty wynagrodzeń poniesiono w roku 1999, co znacznie odbiega od roku podatkowego.", DocProjectCard, "p1", 2025)
	res := Legal(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeInconsistentDates {
			found = true
		}
	}
	if !found {
		t.Error("expected INCONSISTENT_DATES issue")
	}
}

func TestLegalFlagsRelatedPartyWithoutDisclosure(t *testing.T) {
	ctx := NewContext("Koszty wynagrodzeń poniesiono na rzecz podmiotu powiązanego bez żadnej dodatkowej wzmianki.", DocProjectCard, "p1", 2025)
	res := Legal(ctx)
	found := false
	for _, i := range res.Issues {
		if i.Code == CodeRelatedPartyDisclosure {
			found = true
		}
	}
	if !found {
		t.Error("expected RELATED_PARTY_DISCLOSURE issue")
	}
}
