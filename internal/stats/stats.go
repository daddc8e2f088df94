// Package stats derives the dashboard figures from the full expense list.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	"expensetracker/internal/filter"
)

// Trend is the direction of the month-over-month change.
type Trend string

const (
	TrendUp   Trend = "up"   // spending grew or stayed flat
	TrendDown Trend = "down" // spending shrank
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// Summary holds every figure shown above the listing. It is always computed
// over the whole store, never over a filtered subset.
type Summary struct {
	Total         decimal.Decimal
	CurrentMonth  string // YYYY-MM
	PreviousMonth string // YYYY-MM
	ThisMonth     decimal.Decimal
	LastMonth     decimal.Decimal
	Change        decimal.Decimal
	ByCategory    []CategoryTotal
}

// Trend returns TrendUp for a non-negative change and TrendDown otherwise.
func (s Summary) Trend() Trend {
	if s.Change.IsNegative() {
		return TrendDown
	}
	return TrendUp
}

// Compute derives the summary of records relative to now.
func Compute(records []core.Expense, now time.Time) Summary {
	current := core.MonthBucket(now)
	previous := core.MonthBucket(core.PreviousMonth(now))

	s := Summary{
		Total:         decimal.Zero,
		CurrentMonth:  current,
		PreviousMonth: previous,
		ThisMonth:     decimal.Zero,
		LastMonth:     decimal.Zero,
	}
	for _, e := range records {
		s.Total = s.Total.Add(e.Amount)
		if strings.HasPrefix(e.Date, current) {
			s.ThisMonth = s.ThisMonth.Add(e.Amount)
		}
		if strings.HasPrefix(e.Date, previous) {
			s.LastMonth = s.LastMonth.Add(e.Amount)
		}
	}
	s.Change = s.ThisMonth.Sub(s.LastMonth)
	s.ByCategory = Breakdown(records)
	return s
}

// Breakdown sums amounts per category, largest first. Ties keep the order in
// which the categories first appear in records.
func Breakdown(records []core.Expense) []CategoryTotal {
	index := map[string]int{}
	var out []CategoryTotal
	for _, e := range records {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Amount.GreaterThan(out[b].Amount)
	})
	return out
}

// MonthOption is one entry of the month selector.
type MonthOption struct {
	Value string // YYYY-MM, or filter.AllMonths
	Label string
}

// MonthOptions returns the three month selector entries: all months, the
// current month and the previous month.
func MonthOptions(now time.Time) []MonthOption {
	prev := core.PreviousMonth(now)
	return []MonthOption{
		{Value: filter.AllMonths, Label: "All Months"},
		{Value: core.MonthBucket(now), Label: core.MonthLabel(now)},
		{Value: core.MonthBucket(prev), Label: core.MonthLabel(prev)},
	}
}
