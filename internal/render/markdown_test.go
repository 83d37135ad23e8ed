package render

import (
	"strings"
	"testing"
)

func TestCleanMarkdownStripsFence(t *testing.T) {
	wrapped := "```markdown\n# Tytuł\n\nTreść.\n```"
	cleaned := CleanMarkdown(wrapped)
	if strings.Contains(cleaned, "```") {
		t.Errorf("expected fence stripped, got %q", cleaned)
	}
	if !strings.HasPrefix(cleaned, "# Tytuł") {
		t.Errorf("expected heading preserved, got %q", cleaned)
	}
}

func TestCleanMarkdownLeavesUnwrappedContentAlone(t *testing.T) {
	plain := "# Tytuł\n\nTreść."
	if got := CleanMarkdown(plain); got != plain {
		t.Errorf("expected unchanged content, got %q", got)
	}
}

func TestToHTMLRendersTableAndFootnote(t *testing.T) {
	md := "# Raport\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\nTreść z przypisem[^1].\n\n[^1]: Uwaga źródłowa.\n"
	html, toc, err := ToHTML(md)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected table extension to render a <table>, got %q", html)
	}
	if !strings.Contains(html, "footnote") {
		t.Errorf("expected footnote extension markup, got %q", html)
	}
	if len(toc) != 1 || toc[0].Text != "Raport" {
		t.Errorf("expected single TOC entry for the heading, got %+v", toc)
	}
}

func TestToHTMLLinkifiesBareURL(t *testing.T) {
	md := "Zobacz https://example.com/dowod dla szczegółów."
	html, _, err := ToHTML(md)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `href="https://example.com/dowod"`) {
		t.Errorf("expected linkify extension to produce an anchor, got %q", html)
	}
}

func TestToHTMLDeduplicatesRepeatedHeadingSlugs(t *testing.T) {
	md := "# Koszty\n\ntreść\n\n# Koszty\n\nwięcej treści\n"
	_, toc, err := ToHTML(md)
	if err != nil {
		t.Fatal(err)
	}
	if len(toc) != 2 {
		t.Fatalf("expected two headings, got %+v", toc)
	}
	if toc[0].Slug == toc[1].Slug {
		t.Errorf("expected distinct slugs for repeated heading text, got %q twice", toc[0].Slug)
	}
}

func TestValidateMarkdownAcceptsWellFormedDocument(t *testing.T) {
	if err := ValidateMarkdown("# Tytuł\n\nTreść.\n"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
