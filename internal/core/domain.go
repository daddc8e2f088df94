package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for expense dates.
const DateLayout = "2006-01-02"

type (
	Expense struct {
		ID          string
		Title       string
		Amount      decimal.Decimal
		Category    string
		Date        string // YYYY-MM-DD
		Description string // empty when absent
	}

	// Draft holds the raw add-expense form values before an id is minted.
	Draft struct {
		Title       string
		Amount      string
		Category    string
		Date        string
		Description string
	}
)

// HasDescription reports whether the optional description is present.
func (e Expense) HasDescription() bool {
	return e.Description != ""
}

// Month returns the YYYY-MM bucket of the expense date.
func (e Expense) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

// Day parses the expense date. The zero time is returned for malformed dates.
func (e Expense) Day() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Complete reports whether the required fields (title, amount, category, date)
// are present and usable. Amounts must parse as non-negative decimals, dates
// must be calendar dates and the category must be one of Categories();
// anything else counts as missing.
func (d Draft) Complete() bool {
	if strings.TrimSpace(d.Title) == "" || !IsCategory(strings.TrimSpace(d.Category)) {
		return false
	}
	if _, err := ParseAmount(d.Amount); err != nil {
		return false
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(d.Date)); err != nil {
		return false
	}
	return true
}

// Expense converts a complete draft into a record carrying the given id.
// The second result is false when the draft is incomplete.
func (d Draft) Expense(id string) (Expense, bool) {
	if !d.Complete() {
		return Expense{}, false
	}
	amount, _ := ParseAmount(d.Amount)
	return Expense{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Amount:      amount,
		Category:    strings.TrimSpace(d.Category),
		Date:        strings.TrimSpace(d.Date),
		Description: strings.TrimSpace(d.Description),
	}, true
}
