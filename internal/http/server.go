package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/cache"
	"expensetracker/internal/charts"
	applog "expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/services"
	"expensetracker/internal/stats"
	appweb "expensetracker/web"
)

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Addr               string
	RateLimitPerMinute int
	ChartCacheSize     int
	ChartCacheTTL      time.Duration
	// Now pins the clock used for monthly figures; defaults to the current
	// time in UTC so month buckets match the stored dates.
	Now func() time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.ExpenseService
	logger    *applog.Logger
	now       func() time.Time
	started   time.Time

	// Rendered chart PNGs keyed by store version
	chartCache  *cache.LRUCache[[]byte]
	renderChart func([]stats.CategoryTotal) ([]byte, error)

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(opts Options, svc *services.ExpenseService, logger *applog.Logger) (*Server, error) {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.ChartCacheSize <= 0 {
		opts.ChartCacheSize = 32
	}
	if opts.ChartCacheTTL <= 0 {
		opts.ChartCacheTTL = 10 * time.Minute
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	logger = logger.WithComponent(applog.ComponentHTTP)
	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:           opts.Addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		templates:   t,
		svc:         svc,
		logger:      logger,
		now:         opts.Now,
		started:     time.Now(),
		chartCache:  cache.NewLRUCache[[]byte](opts.ChartCacheSize, opts.ChartCacheTTL),
		renderChart: charts.RenderBreakdown,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		detector: security.NewDetector(logger),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("/static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	limit := s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited)

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.Handle("/expenses", limit(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("/expenses/delete", limit(http.HandlerFunc(s.handleDeleteExpense)))

	// UI partials
	mux.HandleFunc("/ui/expenses", s.handleExpensesPartial)
	mux.HandleFunc("/ui/summary", s.handleSummaryPartial)
	mux.HandleFunc("/ui/breakdown", s.handleBreakdownPartial)
	mux.HandleFunc("/charts/categories.png", s.handleCategoryChart)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = s.detector.Middleware(s.tracer.Middleware(headers.Middleware(mux)))

	return s, nil
}

// ChartCache exposes the chart cache so its expired entries can be swept
// by a cache.Manager.
func (s *Server) ChartCache() *cache.LRUCache[[]byte] {
	return s.chartCache
}

// Shutdown stops background work and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").
		TriggerErrorNotification("Too many requests. Please wait a minute.").
		Write(w)
}

// render executes a template into a buffer and writes it only on success.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).LogError(r.Context(),
			"Template execution failed", err, applog.OpRender,
			applog.LogFields{"template": name})
		InternalServerError("Failed to render view").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(buf.String()).Write(w)
}
