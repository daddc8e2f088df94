package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady reports whether the server can render pages
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil || s.templates.Lookup("index.html") == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	checks["store"] = map[string]any{
		"expenses": s.svc.Len(),
		"version":  s.svc.Version(),
		"status":   "ok",
	}

	chartStats := s.chartCache.Stats()
	checks["chart_cache"] = map[string]any{
		"entries": chartStats.Entries,
		"status":  "ok",
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}

	response := map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.tracer.GetMetrics()
	svcMetrics := s.svc.Metrics()
	chartStats := s.chartCache.Stats()

	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(w, "%s %v\n\n", name, value)
	}

	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "counter", "HTTP responses with a 5xx status", traceMetrics.ServerErrors)
	metric("http_response_time_avg_seconds", "gauge", "Average response time", fmt.Sprintf("%.6f", traceMetrics.AverageResponseTime.Seconds()))

	metric("expenses_stored", "gauge", "Expenses currently in the session store", s.svc.Len())
	metric("expenses_added_total", "counter", "Accepted add requests", svcMetrics.Added)
	metric("expenses_rejected_total", "counter", "Add requests ignored because a required field was missing", svcMetrics.Rejected)
	metric("expenses_deleted_total", "counter", "Deletes that removed an expense", svcMetrics.Deleted)
	metric("expenses_delete_misses_total", "counter", "Deletes of unknown ids", svcMetrics.DeleteMisses)
	metric("expense_events_published_total", "counter", "Change notifications published", svcMetrics.Published)
	metric("expense_events_failed_total", "counter", "Change notifications that failed to publish", svcMetrics.PublishFailures)

	metric("chart_cache_hits_total", "counter", "Chart cache hits", chartStats.Hits)
	metric("chart_cache_misses_total", "counter", "Chart cache misses", chartStats.Misses)
	metric("chart_cache_entries", "gauge", "Current chart cache entries", chartStats.Entries)

	metric("rate_limit_hits_total", "counter", "Requests refused by the rate limiter", s.limiter.Rejected())
	metric("active_rate_limit_clients", "gauge", "Currently tracked rate limit clients", s.limiter.ActiveClients())
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", s.detector.SuspiciousRequests())

	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", time.Since(s.started).Seconds()))
}
