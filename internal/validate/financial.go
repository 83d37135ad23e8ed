package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

const financialTolerance = 0.01 // zł, adapted from validate.go's equation-check tolerance idiom

var signedAmountRE = regexp.MustCompile(`-?\d[\d \x{00a0}]*[.,]\d{2}\s*(zł|PLN)?`)
var nexusLineRE = regexp.MustCompile(`(?i)nexus[^\n\d-]{0,20}(-?\d+[.,]\d+)`)
var percentageRE = regexp.MustCompile(`(-?\d+(?:[.,]\d+)?)\s*%`)
var totalLineRE = regexp.MustCompile(`(?i)(razem|suma|łącznie)[^\n\d-]{0,20}(-?\d[\d \x{00a0}]*[.,]\d{2})`)
var foreignCurrencyRE = regexp.MustCompile(`(?i)\b(EUR|USD|GBP)\b|[€$£]`)

const suspiciousAmountThreshold = 10_000_000_00 // 10m zł expressed in grosz

// Financial is the third pipeline stage: amount sanity, Nexus range and
// discrepancy, total-vs-components tolerance check, percentage and
// currency consistency.
func Financial(ctx *Context) Result {
	var issues []Issue

	var amounts []domain.Money
	for _, raw := range signedAmountRE.FindAllString(ctx.Content, -1) {
		m, ok := domain.ParseMoney(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		amounts = append(amounts, m)
		if m < 0 {
			issues = append(issues, Issue{Severity: SeverityError, Code: CodeNegativeAmount, Message: "negative amount found: " + raw, Location: raw})
		}
		if m > suspiciousAmountThreshold || m < -suspiciousAmountThreshold {
			issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeSuspiciousAmount, Message: "implausibly large amount: " + raw, Location: raw})
		}
	}

	var lastNexus *float64
	for _, match := range nexusLineRE.FindAllStringSubmatch(ctx.Content, -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
		if err != nil {
			continue
		}
		lastNexus = &n
		if n < 0 {
			issues = append(issues, Issue{Severity: SeverityError, Code: CodeNexusNegative, Message: "Nexus value below zero: " + match[1]})
		}
		if n > 1 {
			issues = append(issues, Issue{Severity: SeverityError, Code: CodeNexusExceedsOne, Message: "Nexus value above one: " + match[1]})
		}
	}
	if lastNexus != nil && ctx.NexusObserved != nil {
		if math.Abs(*lastNexus-*ctx.NexusObserved) > financialTolerance {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeNexusMismatch,
				Message:  "document Nexus value diverges from the recomputed value beyond tolerance",
			})
		}
	}

	for _, match := range totalLineRE.FindAllStringSubmatch(ctx.Content, -1) {
		stated, ok := domain.ParseMoney(match[2])
		if !ok || len(amounts) <= 2 {
			continue
		}
		statedZloty := stated.Zloty()

		// Exclude the stated total itself from the line items being summed.
		var lineItems []domain.Money
		for _, a := range amounts {
			if math.Abs(a.Zloty()-statedZloty) > financialTolerance {
				lineItems = append(lineItems, a)
			}
		}
		if len(lineItems) == 0 {
			continue
		}

		var sum domain.Money
		for _, a := range lineItems {
			sum = sum.Add(a)
		}
		diff := statedZloty - sum.Zloty()
		if math.Abs(diff) > financialTolerance {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeTotalMismatch,
				Message:  fmt.Sprintf("possible total mismatch: stated %.2f, computed %.2f (difference: %.2f)", statedZloty, sum.Zloty(), diff),
				Location: match[0],
			})
		}
	}

	for _, match := range percentageRE.FindAllStringSubmatch(ctx.Content, -1) {
		pct, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
		if err != nil {
			continue
		}
		if pct < 0 || pct > 100 {
			issues = append(issues, Issue{Severity: SeverityError, Code: CodeInvalidPercentage, Message: "percentage out of range: " + match[0], Location: match[0]})
		}
	}

	hasPLN := strings.Contains(ctx.Content, "zł") || strings.Contains(strings.ToUpper(ctx.Content), "PLN")
	if foreignCurrencyRE.MatchString(ctx.Content) && !hasPLN {
		issues = append(issues, Issue{Severity: SeverityWarning, Code: CodeMixedCurrencies, Message: "foreign currency literal found without any PLN amount for context"})
	}

	score := clampScore(1.0 - 0.3*float64(errorCount(issues)) - 0.1*float64(warningCount(issues)))
	return Result{
		Valid:       errorCount(issues) == 0,
		Issues:      issues,
		Score:       score,
		Stage:       "financial",
		ValidatedAt: time.Now(),
	}
}
