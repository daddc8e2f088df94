package http

import (
	"errors"
	"net/http"
	"strconv"

	"expensetracker/internal/charts"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}

	now := s.now()
	criteria := ParseCriteria(r.URL.Query())
	summary := s.svc.Summary(now)

	data := pageView{
		Summary:    newSummaryView(summary, now),
		Breakdown:  newBreakdownView(summary.ByCategory, s.svc.Version()),
		Table:      newTableView(s.svc.List(criteria), criteria),
		Categories: categoryOptions(criteria.Category),
		Months:     monthOptions(now, criteria.Month),
		FormCats:   core.Categories(),
		Today:      now.Format(core.DateLayout),
	}
	s.render(w, r, "index.html", data)
}

// handleExpensesPartial renders the filtered table.
func (s *Server) handleExpensesPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	criteria := ParseCriteria(r.URL.Query())
	records := s.svc.List(criteria)

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Listing expenses",
		applog.FieldOperation, applog.OpList,
		"search", criteria.Search,
		applog.FieldCategory, criteria.Category,
		"month", criteria.Month,
		"count", len(records))

	s.render(w, r, "table", newTableView(records, criteria))
}

// handleSummaryPartial renders the three statistic cards. Filters never
// apply to them.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	now := s.now()
	s.render(w, r, "summary", newSummaryView(s.svc.Summary(now), now))
}

func (s *Server) handleBreakdownPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	totals, version := s.svc.Breakdown()
	s.render(w, r, "breakdown", newBreakdownView(totals, version))
}

// handleCategoryChart serves the breakdown as a PNG, rendered at most once
// per store version.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	totals, version := s.svc.Breakdown()
	key := strconv.FormatUint(version, 10)

	png, err := s.chartCache.GetOrCompute(key, func() ([]byte, error) {
		return s.renderChart(totals)
	})
	if errors.Is(err, charts.ErrNoData) {
		NotFoundError("No expenses to chart").Write(w)
		return
	}
	if err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).LogError(r.Context(),
			"Chart rendering failed", err, applog.OpRender,
			applog.LogFields{applog.FieldVersion: version})
		InternalServerError("Failed to render chart").Write(w)
		return
	}

	NewHTMXResponse().
		Header("Content-Type", "image/png").
		Header("Cache-Control", "private, max-age=300").
		Body(png).
		Write(w)
}
