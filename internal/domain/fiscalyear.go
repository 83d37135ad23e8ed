package domain

import (
	"fmt"
	"time"
)

// MinFiscalYear is the earliest fiscal year the B+R/IP Box regime covers.
const MinFiscalYear = 2004

// ValidateFiscalYear checks that year is >= MinFiscalYear and no more than
// one year ahead of now's year, unless allowFarFuture is set.
func ValidateFiscalYear(year int, now time.Time, allowFarFuture bool) (ok bool, message string) {
	if year < MinFiscalYear {
		return false, fmt.Sprintf("fiscal year must be >= %d", MinFiscalYear)
	}
	if !allowFarFuture && year > now.Year()+1 {
		return false, "fiscal year is more than one year in the future"
	}
	return true, ""
}

// PolishMonthNames returns the twelve Polish month names in nominative case.
var PolishMonthNames = [12]string{
	"styczeń", "luty", "marzec", "kwiecień", "maj", "czerwiec",
	"lipiec", "sierpień", "wrzesień", "październik", "listopad", "grudzień",
}

// FormatDateISO formats a date as YYYY-MM-DD.
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatePL formats a date as DD.MM.YYYY.
func FormatDatePL(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatMonthYearPL renders "styczeń 2025" style month/year labels.
func FormatMonthYearPL(t time.Time) string {
	return fmt.Sprintf("%s %d", PolishMonthNames[t.Month()-1], t.Year())
}
