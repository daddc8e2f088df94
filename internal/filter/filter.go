// Package filter selects the visible subset of expenses for the listing.
package filter

import (
	"strings"

	"expensetracker/internal/core"
)

// Sentinels meaning "no restriction" for the category and month selectors.
const (
	AllCategories = "all"
	AllMonths     = "all"
)

// Criteria combines the three listing filters. The zero value matches everything.
type Criteria struct {
	Search   string
	Category string // category label, or AllCategories
	Month    string // YYYY-MM bucket, or AllMonths
}

// IsZero reports whether no filter restricts the listing.
func (c Criteria) IsZero() bool {
	return c.Search == "" && isAll(c.Category, AllCategories) && isAll(c.Month, AllMonths)
}

// Matches reports whether e passes all three filters.
func (c Criteria) Matches(e core.Expense) bool {
	return c.matchesSearch(e) && c.matchesCategory(e) && c.matchesMonth(e)
}

// Apply returns the records matching c, in their original relative order.
func Apply(records []core.Expense, c Criteria) []core.Expense {
	if c.IsZero() {
		return append(make([]core.Expense, 0, len(records)), records...)
	}
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c Criteria) matchesSearch(e core.Expense) bool {
	term := strings.ToLower(c.Search)
	if strings.Contains(strings.ToLower(e.Title), term) {
		return true
	}
	// An absent description never matches, not even the empty term.
	return e.HasDescription() && strings.Contains(strings.ToLower(e.Description), term)
}

func (c Criteria) matchesCategory(e core.Expense) bool {
	return isAll(c.Category, AllCategories) || e.Category == c.Category
}

func (c Criteria) matchesMonth(e core.Expense) bool {
	return isAll(c.Month, AllMonths) || strings.HasPrefix(e.Date, c.Month)
}

func isAll(v, sentinel string) bool {
	return v == "" || v == sentinel
}
