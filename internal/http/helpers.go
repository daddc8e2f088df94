package http

import (
	"strings"

	"expensetracker/internal/core"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	return strings.TrimSpace(stripControl(s))
}

// stripControl removes control characters except tab, newline and carriage
// return. Surrounding whitespace is kept.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// displayDate renders a stored date as M/D/YYYY. Malformed dates are shown
// as stored.
func displayDate(e core.Expense) string {
	d := e.Day()
	if d.IsZero() {
		return e.Date
	}
	return d.Format("1/2/2006")
}
