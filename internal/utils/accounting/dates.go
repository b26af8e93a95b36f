package accounting

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in the CLI.
const DateLayout = "2006-01-02"

// FinancialYearStartMonth is the first month of the Indian-style financial year (April).
const FinancialYearStartMonth = time.April

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FinancialYearStart returns April 1 of the financial year containing t.
func FinancialYearStart(t time.Time) time.Time {
	y := t.Year()
	if t.Month() < FinancialYearStartMonth {
		y--
	}
	return time.Date(y, FinancialYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// FinancialYear returns the "YYYY-YYYY" label of the financial year containing t,
// e.g. 2024-05-10 -> "2024-2025" and 2025-02-01 -> "2024-2025".
func FinancialYear(t time.Time) string {
	start := FinancialYearStart(t).Year()
	return fmt.Sprintf("%d-%d", start, start+1)
}

// InRange reports whether the calendar date of t lies within the inclusive bounds. Nil bounds are open.
func InRange(t time.Time, from, to *time.Time) bool {
	d := DateOnly(t)
	if from != nil && d.Before(DateOnly(*from)) {
		return false
	}
	if to != nil && d.After(DateOnly(*to)) {
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
