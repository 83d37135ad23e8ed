package validate

import (
	"regexp"
	"strings"
	"time"
)

var nipFieldRE = regexp.MustCompile(`NIP:?\s*[\d-]{10,13}`)
var fiscalYearFieldRE = regexp.MustCompile(`(19|20)\d{2}`)
var amountFieldRE = regexp.MustCompile(`\d[\d \x{00a0}]*[.,]\d{2}\s*(zł|PLN)?`)
var dateFieldRE = regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}-\d{2}-\d{2}`)
var headingRE = regexp.MustCompile(`(?m)^#{1,3}\s+.+$`)
var tableRowRE = regexp.MustCompile(`(?m)^\|.*\|\s*$`)

// requiredHeadings names the Polish section-title substrings each
// document type's body must contain at least one heading matching.
var requiredHeadings = map[DocumentType][]string{
	DocProjectCard:          {"Karta projektu", "Harmonogram"},
	DocTimesheetMonthly:     {"zestawienie czasu pracy"},
	DocExpenseRegistry:      {"Rejestr kosztów"},
	DocNexusCalculation:     {"Kalkulacja wskaźnika Nexus"},
	DocBRAnnualSummary:      {"Roczne podsumowanie"},
	DocIPBoxProcedure:       {"Procedura ewidencji IP Box"},
	DocTaxInterpretationReq: {"Wniosek o wydanie interpretacji"},
	DocBRContract:           {"Umowa o prace badawczo-rozwojowe"},
}

// Structure is the first pipeline stage: presence of required headings
// and inline fields, table well-formedness, non-empty sections.
func Structure(ctx *Context) Result {
	var issues []Issue

	trimmed := strings.TrimSpace(ctx.Content)
	if len(trimmed) < 100 {
		issues = append(issues, Issue{Severity: SeverityError, Code: CodeDocTooShort, Message: "document body is shorter than 100 characters"})
	}

	headings := headingRE.FindAllString(ctx.Content, -1)
	if len(headings) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Code: CodeMissingTitle, Message: "document has no Markdown heading"})
	}

	for _, required := range requiredHeadings[ctx.DocType] {
		if !containsFold(ctx.Content, required) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeMissingSection,
				Message:  "missing required section: " + required,
			})
		}
	}

	if !nipFieldRE.MatchString(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeMissingField, Message: "no NIP field found in document body"})
	}
	if !fiscalYearFieldRE.MatchString(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeMissingField, Message: "no fiscal-year-like field found in document body"})
	}
	if !amountFieldRE.MatchString(ctx.Content) && !dateFieldRE.MatchString(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeMissingField, Message: "document has neither an amount nor a date field"})
	}

	for _, row := range tableRowRE.FindAllString(ctx.Content, -1) {
		cells := strings.Count(row, "|")
		if cells < 2 {
			issues = append(issues, Issue{Severity: SeverityError, Code: CodeInvalidTableFormat, Message: "malformed table row: " + row})
			break
		}
	}

	if hasEmptySection(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeEmptySections, Message: "document contains a heading with no following content"})
	}

	score := clampScore(1.0 - 0.2*float64(errorCount(issues)) - 0.05*float64(warningCount(issues)))
	return Result{
		Valid:       errorCount(issues) == 0,
		Issues:      issues,
		Score:       score,
		Stage:       "structure",
		ValidatedAt: time.Now(),
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// hasEmptySection detects a heading immediately followed by another
// heading or end-of-document with no intervening non-blank content.
func hasEmptySection(content string) bool {
	lines := strings.Split(content, "\n")
	lastHeadingIdx := -1
	for i, line := range lines {
		if headingRE.MatchString(line) {
			if lastHeadingIdx >= 0 {
				empty := true
				for _, between := range lines[lastHeadingIdx+1 : i] {
					if strings.TrimSpace(between) != "" {
						empty = false
						break
					}
				}
				if empty {
					return true
				}
			}
			lastHeadingIdx = i
		}
	}
	return false
}
