// Package render implements the Markdown -> HTML -> PDF pipeline
// (spec.md §4.C9), extending the teacher's bare goldmark usage
// (pkg/core/utils/markdown.go) with the table, footnote, linkify and
// attribute-list extensions the spec requires, plus a heading-walk TOC
// generator since no pack example wires a dedicated TOC extension.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var fencedWrapperRE = regexp.MustCompile("(?s)^\\s*```(?:markdown)?\\s*\\n(.*)\\n```\\s*$")

// CleanMarkdown strips a leading/trailing ```markdown fence a model
// sometimes wraps its response in, mirroring the teacher's CleanMarkdown.
func CleanMarkdown(content string) string {
	if m := fencedWrapperRE.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return content
}

var markdownParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Footnote,
		extension.Linkify,
	),
	goldmark.WithParserOptions(
		parser.WithAttribute(),
	),
)

// TOCEntry is one heading discovered by a TOC walk.
type TOCEntry struct {
	Level int
	Text  string
	Slug  string
}

// ToHTML converts Markdown content to an HTML fragment and a
// heading-derived table of contents. Headings are slugified the same
// way regardless of whether the caller renders the TOC as links.
func ToHTML(content string) (html string, toc []TOCEntry, err error) {
	source := []byte(content)
	doc := markdownParser.Parser().Parse(text.NewReader(source))

	toc = walkHeadings(doc, source)

	var buf bytes.Buffer
	if err := markdownParser.Renderer().Render(&buf, source, doc); err != nil {
		return "", nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), toc, nil
}

// ValidateMarkdown reports whether content parses without the renderer
// panicking or erroring, mirroring the teacher's ValidateMarkdown.
func ValidateMarkdown(content string) error {
	_, _, err := ToHTML(content)
	return err
}

func walkHeadings(doc ast.Node, source []byte) []TOCEntry {
	var entries []TOCEntry
	seen := make(map[string]int)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		txt := headingText(h, source)
		slug := slugify(txt)
		if n := seen[slug]; n > 0 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}
		seen[slug]++
		entries = append(entries, TOCEntry{Level: h.Level, Text: txt, Slug: slug})
		return ast.WalkContinue, nil
	})
	return entries
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := c.(*ast.Text); ok {
			b.Write(seg.Segment.Value(source))
		}
	}
	return b.String()
}

var nonSlugRE = regexp.MustCompile(`[^a-z0-9\-]+`)

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	lower = strings.ReplaceAll(lower, " ", "-")
	lower = nonSlugRE.ReplaceAllString(lower, "")
	return strings.Trim(lower, "-")
}
