package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

var nipCandidateRE = regexp.MustCompile(`\b\d{3}-\d{3}-\d{2}-\d{2}\b|\b\d{10}\b`)
var yearCandidateRE = regexp.MustCompile(`\b(19|20)\d{2}\b`)
var legalReferenceRE = regexp.MustCompile(`(?i)art\.?\s*18d|art\.?\s*24d|IP Box`)
var relatedPartyRE = regexp.MustCompile(`(?i)podmiot(u|em|y|ów|om|ami)? powiązan`)
var disclosureRE = regexp.MustCompile(`(?i)ujawnien|transakcj(a|i) z podmiotem powiązanym|cen(y|a) transferow`)

// brCategoryPhrases are recognisable B+R cost-category word stems, mostly
// drawn from domain.CategoryDisplayName and matched case-insensitively.
var brCategoryPhrases = []string{
	"wynagrodze", "materiał", "sprzęt", "amortyzacj", "ekspertyz",
	"usług", "badawczo-rozwojow",
}

// Legal is the second pipeline stage: NIP checksums, B+R category
// presence, statutory references for formal documents, date consistency,
// related-party disclosure.
func Legal(ctx *Context) Result {
	var issues []Issue

	for _, candidate := range nipCandidateRE.FindAllString(ctx.Content, -1) {
		if ok, msg := domain.ValidateNIP(candidate); !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeInvalidNIP,
				Message:  "invalid NIP checksum for " + candidate + ": " + msg,
				Location: candidate,
			})
		}
	}

	if !containsAnyFold(ctx.Content, brCategoryPhrases) {
		issues = append(issues, Issue{Severity: SeverityError, Code: CodeMissingBRCategory, Message: "no recognisable B+R cost-category phrase found"})
	}

	if ctx.IsFormal() && !legalReferenceRE.MatchString(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityError, Code: CodeMissingLegalReference, Message: "formal document missing a reference to art. 18d CIT / art. 24d CIT / IP Box"})
	}

	if ctx.IsFormal() && !containsAnyFold(ctx.Content, []string{"kwalifiku", "spełnia przesłank", "uzasadnien"}) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeMissingQualificationJustification, Message: "no qualification justification phrase found"})
	}

	for _, yearStr := range yearCandidateRE.FindAllString(ctx.Content, -1) {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}
		if year < ctx.FiscalYear-1 || year > ctx.FiscalYear+1 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeInconsistentDates,
				Message:  "date literal " + yearStr + " falls outside fiscal year ±1",
				Location: yearStr,
			})
		}
	}

	if relatedPartyRE.MatchString(ctx.Content) && !disclosureRE.MatchString(ctx.Content) {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeRelatedPartyDisclosure, Message: "related-party mention without an accompanying disclosure phrase"})
	}

	score := clampScore(1.0 - 0.25*float64(errorCount(issues)) - 0.1*float64(warningCount(issues)))
	return Result{
		Valid:       errorCount(issues) == 0,
		Issues:      issues,
		Score:       score,
		Stage:       "legal",
		ValidatedAt: time.Now(),
	}
}

func containsAnyFold(haystack string, needles []string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
