package http

import (
	"strconv"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/filter"
	"expensetracker/internal/stats"
)

// expenseRow is one line of the listing table.
type expenseRow struct {
	ID          string
	Title       string
	Description string
	Category    string
	Badge       string
	Date        string
	Amount      string
}

type tableView struct {
	Rows     []expenseRow
	Criteria filter.Criteria
}

type summaryView struct {
	Total      string
	ThisMonth  string
	MonthLabel string
	Change     string
	Trend      string
}

type breakdownItem struct {
	Category string
	Badge    string
	Color    string
	Amount   string
}

type breakdownView struct {
	Items    []breakdownItem
	ChartURL string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Summary    summaryView
	Breakdown  breakdownView
	Table      tableView
	Categories []option // filter selector
	Months     []option
	FormCats   []string // add-expense selector
	Today      string
}

func newTableView(records []core.Expense, c filter.Criteria) tableView {
	rows := make([]expenseRow, 0, len(records))
	for _, e := range records {
		rows = append(rows, expenseRow{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
			Badge:       core.CategoryStyle(e.Category).Badge,
			Date:        displayDate(e),
			Amount:      core.FormatAmount(e.Amount),
		})
	}
	return tableView{Rows: rows, Criteria: c}
}

func newSummaryView(s stats.Summary, now time.Time) summaryView {
	return summaryView{
		Total:      core.FormatAmount(s.Total),
		ThisMonth:  core.FormatAmount(s.ThisMonth),
		MonthLabel: core.MonthLabel(now),
		Change:     core.FormatSignedAmount(s.Change),
		Trend:      string(s.Trend()),
	}
}

func newBreakdownView(totals []stats.CategoryTotal, version uint64) breakdownView {
	v := breakdownView{Items: make([]breakdownItem, 0, len(totals))}
	for _, ct := range totals {
		style := core.CategoryStyle(ct.Category)
		v.Items = append(v.Items, breakdownItem{
			Category: ct.Category,
			Badge:    style.Badge,
			Color:    style.Color,
			Amount:   core.FormatAmount(ct.Amount),
		})
	}
	if len(totals) > 0 {
		v.ChartURL = "/charts/categories.png?v=" + strconv.FormatUint(version, 10)
	}
	return v
}

func categoryOptions(selected string) []option {
	opts := []option{{Value: filter.AllCategories, Label: "All Categories", Selected: selected == filter.AllCategories}}
	for _, c := range core.Categories() {
		opts = append(opts, option{Value: c, Label: c, Selected: c == selected})
	}
	return opts
}

func monthOptions(now time.Time, selected string) []option {
	var opts []option
	for _, m := range stats.MonthOptions(now) {
		opts = append(opts, option{Value: m.Value, Label: m.Label, Selected: m.Value == selected})
	}
	return opts
}
