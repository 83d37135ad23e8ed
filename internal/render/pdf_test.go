package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var octalEscapeRE = regexp.MustCompile(`\\[0-7]{3}`)

func TestPaginateProducesParsablePDFHeader(t *testing.T) {
	p := NewTextPaginator()
	out, err := p.Paginate("<h1>Tytuł</h1><p>Treść dokumentu.</p>", ResolveStylesheet(StylesheetDefault))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-1.7")) {
		t.Errorf("expected a PDF header, got %q", out[:16])
	}
	if !bytes.Contains(out, []byte("startxref")) {
		t.Error("expected a cross-reference trailer")
	}
	if !bytes.Contains(out, []byte("/Type /Catalog")) {
		t.Error("expected a Catalog object")
	}
}

func TestPaginateSplitsLongContentAcrossMultiplePages(t *testing.T) {
	p := NewTextPaginator()
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("<p>Pozycja kosztu kwalifikowanego w ramach działalności badawczo-rozwojowej.</p>")
	}
	out, err := p.Paginate(sb.String(), ResolveStylesheet(StylesheetMinimal))
	if err != nil {
		t.Fatal(err)
	}
	pageCount := strings.Count(string(out), "/Type /Page /Parent")
	if pageCount < 2 {
		t.Errorf("expected content to spill across at least two pages, got %d page objects", pageCount)
	}
}

func TestPaginatePreservesPolishDiacriticsAsOctalEscapes(t *testing.T) {
	p := NewTextPaginator()
	out, err := p.Paginate("<p>Łączny koszt wynagrodzeń: 100 000 zł.</p>", ResolveStylesheet(StylesheetDefault))
	if err != nil {
		t.Fatal(err)
	}
	if !octalEscapeRE.Match(out) {
		t.Errorf("expected at least one octal escape for a Polish diacritic, got %q", out)
	}
	if bytes.Contains(out, []byte("ł")) {
		t.Error("expected raw UTF-8 diacritic bytes to be escaped away, not left verbatim in the content stream")
	}
}

func TestEncodeWinAnsiPLEscapesParensAndBackslash(t *testing.T) {
	got := encodeWinAnsiPL(`a(b)c\d`)
	want := `a\(b\)c\\d`
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestCountPagesMatchesSinglePageForEmptyContent(t *testing.T) {
	if n := CountPages(0, ResolveStylesheet(StylesheetDefault)); n != 1 {
		t.Errorf("expected 1 page for empty content, got %d", n)
	}
}
