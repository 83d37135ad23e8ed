package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Paginator turns rendered HTML into paginated PDF bytes using a
// Stylesheet for layout (spec.md §4.C9).
type Paginator interface {
	Paginate(htmlContent string, style Stylesheet) ([]byte, error)
}

// TextPaginator is the default Paginator: a minimal single-object-stream
// PDF writer in the style of the audrenbdb-facturx pdfBuilder, adapted
// from per-invoice visual layout to plain-text pagination over arbitrary
// generated HTML, with a WinAnsi /Differences encoding preserving Polish
// diacritics instead of the teacher's embedded-font French accents.
type TextPaginator struct{}

// NewTextPaginator returns the default Paginator.
func NewTextPaginator() *TextPaginator { return &TextPaginator{} }

var blockBreakRE = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr)\s*>|<br\s*/?>`)
var anyTagRE = regexp.MustCompile(`<[^>]+>`)
var collapseSpaceRE = regexp.MustCompile(`[ \t]+`)

// htmlToLines strips tags to recover a flat list of non-empty text
// lines, splitting on block-level closing tags and <br>.
func htmlToLines(htmlContent string) []string {
	withBreaks := blockBreakRE.ReplaceAllString(htmlContent, "\n")
	stripped := anyTagRE.ReplaceAllString(withBreaks, "")
	unescaped := html.UnescapeString(stripped)

	var lines []string
	for _, raw := range strings.Split(unescaped, "\n") {
		line := strings.TrimSpace(collapseSpaceRE.ReplaceAllString(raw, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func wrapLine(line string, maxRunes int) []string {
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return []string{line}
	}
	words := strings.Fields(line)
	var out []string
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > maxRunes {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// Paginate implements Paginator.
func (p *TextPaginator) Paginate(htmlContent string, style Stylesheet) ([]byte, error) {
	rawLines := htmlToLines(htmlContent)

	charsPerLine := int((style.PageWidthPts - 2*style.MarginPoints) / (style.BodyFontSize * 0.5))
	if charsPerLine < 10 {
		charsPerLine = 80
	}

	var lines []string
	for _, l := range rawLines {
		lines = append(lines, wrapLine(l, charsPerLine)...)
	}

	lineHeight := style.BodyFontSize * 1.4
	usableHeight := style.PageHeightPts - 2*style.MarginPoints
	linesPerPage := int(usableHeight / lineHeight)
	if linesPerPage < 1 {
		linesPerPage = 1
	}

	var pages [][]string
	for len(lines) > 0 {
		n := linesPerPage
		if n > len(lines) {
			n = len(lines)
		}
		pages = append(pages, lines[:n])
		lines = lines[n:]
	}
	if len(pages) == 0 {
		pages = [][]string{nil}
	}

	return buildPDF(pages, style), nil
}

// pdfBuilder accumulates numbered objects and serialises them with a
// trailing cross-reference table, mirroring audrenbdb-facturx's builder.
type pdfBuilder struct {
	objects []pdfObject
	offsets []int
	buffer  bytes.Buffer
}

type pdfObject struct {
	num     int
	content []byte
	stream  []byte
}

func newPDFBuilder() *pdfBuilder {
	return &pdfBuilder{objects: make([]pdfObject, 0, 16)}
}

func (b *pdfBuilder) addObject(content []byte, stream []byte) int {
	num := len(b.objects) + 1
	b.objects = append(b.objects, pdfObject{num: num, content: content, stream: stream})
	return num
}

func (b *pdfBuilder) build(rootNum, infoNum int) []byte {
	b.buffer.Reset()
	b.offsets = make([]int, 0, len(b.objects))

	b.buffer.WriteString("%PDF-1.7\n")
	b.buffer.Write([]byte("%\xE2\xE3\xCF\xD3\n"))

	for _, obj := range b.objects {
		b.offsets = append(b.offsets, b.buffer.Len())
		fmt.Fprintf(&b.buffer, "%d 0 obj\n", obj.num)
		b.buffer.Write(obj.content)
		if obj.stream != nil {
			b.buffer.WriteString("\nstream\n")
			b.buffer.Write(obj.stream)
			b.buffer.WriteString("\nendstream")
		}
		b.buffer.WriteString("\nendobj\n")
	}

	xrefOffset := b.buffer.Len()
	b.buffer.WriteString("xref\n")
	fmt.Fprintf(&b.buffer, "0 %d\n", len(b.objects)+1)
	b.buffer.WriteString("0000000000 65535 f \n")
	for _, offset := range b.offsets {
		fmt.Fprintf(&b.buffer, "%010d 00000 n \n", offset)
	}

	b.buffer.WriteString("trailer\n")
	fmt.Fprintf(&b.buffer, "<< /Size %d /Root %d 0 R /Info %d 0 R >>\n", len(b.objects)+1, rootNum, infoNum)
	fmt.Fprintf(&b.buffer, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return b.buffer.Bytes()
}

// polishGlyphs maps the Polish diacritic runes absent from WinAnsiEncoding
// to custom codes in its unused 128-159 range, via Adobe standard glyph
// names placed in the font's /Differences array.
var polishGlyphs = []struct {
	r    rune
	code int
	name string
}{
	{'ą', 128, "aogonek"}, {'Ą', 129, "Aogonek"},
	{'ć', 130, "cacute"}, {'Ć', 131, "Cacute"},
	{'ę', 132, "eogonek"}, {'Ę', 133, "Eogonek"},
	{'ł', 134, "lslash"}, {'Ł', 135, "Lslash"},
	{'ń', 136, "nacute"}, {'Ń', 137, "Nacute"},
	{'ś', 138, "sacute"}, {'Ś', 139, "Sacute"},
	{'ź', 140, "zacute"}, {'Ź', 141, "Zacute"},
	{'ż', 142, "zdotaccent"}, {'Ż', 143, "Zdotaccent"},
}

func polishGlyphCode(r rune) (int, bool) {
	for _, g := range polishGlyphs {
		if g.r == r {
			return g.code, true
		}
	}
	return 0, false
}

func differencesArray() string {
	var b strings.Builder
	b.WriteString("128")
	for _, g := range polishGlyphs {
		fmt.Fprintf(&b, " /%s", g.name)
	}
	return b.String()
}

// encodeWinAnsiPL escapes text for a PDF literal string, routing Polish
// diacritics through the custom /Differences codes and everything else
// through plain ASCII or the "?" fallback the teacher uses.
func encodeWinAnsiPL(s string) string {
	var result strings.Builder
	result.Grow(len(s) * 2)
	for _, c := range s {
		switch c {
		case '(':
			result.WriteString(`\(`)
		case ')':
			result.WriteString(`\)`)
		case '\\':
			result.WriteString(`\\`)
		default:
			if code, ok := polishGlyphCode(c); ok {
				fmt.Fprintf(&result, "\\%03o", code)
			} else if c >= 32 && c < 127 {
				result.WriteRune(c)
			} else {
				result.WriteByte('?')
			}
		}
	}
	return result.String()
}

func writeTextColored(content *bytes.Buffer, text string, x, y, size float64, rgb [3]float64) {
	encoded := encodeWinAnsiPL(text)
	content.WriteString("BT\n")
	fmt.Fprintf(content, "%.3f %.3f %.3f rg\n", rgb[0], rgb[1], rgb[2])
	fmt.Fprintf(content, "/F1 %.0f Tf\n", size)
	fmt.Fprintf(content, "%.2f %.2f Td\n", x, y)
	fmt.Fprintf(content, "(%s) Tj\n", encoded)
	content.WriteString("ET\n")
}

func buildPDF(pages [][]string, style Stylesheet) []byte {
	b := newPDFBuilder()

	fontDescObj := b.addObject([]byte(fmt.Sprintf(
		"<< /Type /Encoding /BaseEncoding /WinAnsiEncoding /Differences [%s] >>",
		differencesArray(),
	)), nil)

	fontObj := b.addObject([]byte(fmt.Sprintf(
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding %d 0 R >>",
		fontDescObj,
	)), nil)

	pageObjNums := make([]int, len(pages))
	contentObjNums := make([]int, len(pages))
	for i := range pages {
		contentObjNums[i] = -1 // placeholder, filled below after we know page kids count
	}

	// Pages object number is reserved after font objects; compute it
	// before emitting page objects since they reference it as /Parent.
	pagesObj := fontObj + 1 + len(pages)*2 // each page contributes one content stream + one page dict

	for i, page := range pages {
		var content bytes.Buffer
		content.WriteString("q\n")
		y := style.PageHeightPts - style.MarginPoints
		lineHeight := style.BodyFontSize * 1.4
		for _, line := range page {
			writeTextColored(&content, line, style.MarginPoints, y, style.BodyFontSize, style.HeadingColor)
			y -= lineHeight
		}
		content.WriteString("Q\n")

		contentObj := b.addObject([]byte(fmt.Sprintf("<< /Length %d >>", content.Len())), content.Bytes())
		pageObj := b.addObject([]byte(fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %.2f %.2f] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
			pagesObj, style.PageWidthPts, style.PageHeightPts, contentObj, fontObj,
		)), nil)

		contentObjNums[i] = contentObj
		pageObjNums[i] = pageObj
	}

	var kids strings.Builder
	for i, n := range pageObjNums {
		if i > 0 {
			kids.WriteString(" ")
		}
		fmt.Fprintf(&kids, "%d 0 R", n)
	}
	// pagesObj was reserved above so each page dict's /Parent could be
	// written before the Pages object itself existed; addObject's
	// sequential numbering makes this the next object regardless.
	b.addObject([]byte(fmt.Sprintf(
		"<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pageObjNums),
	)), nil)

	catalogObj := b.addObject([]byte(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj)), nil)
	infoObj := b.addObject([]byte(fmt.Sprintf(
		"<< /Producer (br-doc-generator) /CreationDate (D:%s) >>", "00000000000000Z",
	)), nil)

	return b.build(catalogObj, infoObj)
}

// CountPages reports how many pages Paginate would emit for the given
// plain-text line count and stylesheet, useful for size estimation
// without actually rendering.
func CountPages(lineCount int, style Stylesheet) int {
	lineHeight := style.BodyFontSize * 1.4
	usableHeight := style.PageHeightPts - 2*style.MarginPoints
	perPage := int(usableHeight / lineHeight)
	if perPage < 1 {
		perPage = 1
	}
	if lineCount == 0 {
		return 1
	}
	pages := lineCount / perPage
	if lineCount%perPage != 0 {
		pages++
	}
	return pages
}
