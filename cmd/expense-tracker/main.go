package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/amqp"
	"expensetracker/internal/cache"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/core"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/ledger"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/stats"
	"expensetracker/internal/worker"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Track personal expenses from the browser",
	Long: `Expense Tracker serves a single-page dashboard for recording expenses,
filtering them and following monthly spending by category.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP dashboard",
	RunE:  runServe,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the statistics of the seed data",
	RunE:  runSummary,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expense categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range core.Categories() {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mirror a running tracker from its AMQP change notifications",
	RunE:  runWatch,
}

var (
	summaryNow     string
	reportInterval time.Duration
)

func init() {
	summaryCmd.Flags().StringVar(&summaryNow, "now", "", "reference date (YYYY-MM-DD) for the monthly figures; defaults to today")
	watchCmd.Flags().DurationVar(&reportInterval, "report-every", time.Minute, "how often to log the mirrored totals")
	rootCmd.AddCommand(serveCmd, summaryCmd, categoriesCmd, watchCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cli.LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := cli.ShutdownContext(cmd.Context(), logger)
	defer cancel()

	store := ledger.New()
	if cfg.SeedData {
		store = ledger.NewSeeded()
	}

	publisher := connectPublisher(ctx, cfg, logger)
	svc := services.NewExpenseService(store, publisher, logger)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("Failed to close publisher", applog.FieldError, err)
		}
	}()

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ChartCacheSize:     cfg.ChartCacheSize,
		ChartCacheTTL:      cfg.ChartCacheTTL,
	}, svc, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	caches := cache.NewManager(logger.WithComponent(applog.ComponentCache).Logger)
	caches.Register(srv.ChartCache())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting expense tracker",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			"expenses", store.Len(),
			"amqp_enabled", publisher != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		caches.Run(cfg.CacheCleanupInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", applog.FieldOperation, applog.OpShutdown)
		caches.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", applog.FieldError, err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// connectPublisher returns nil when notifications are disabled or the broker
// cannot be reached.
func connectPublisher(ctx context.Context, cfg *config.Config, logger *applog.Logger) services.Publisher {
	if !cfg.AMQPEnabled() {
		return nil
	}
	amqpLogger := logger.WithComponent(applog.ComponentAMQP)
	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPConnectAttempts)
	if err != nil {
		amqpLogger.Warn("Expense notifications disabled",
			applog.FieldError, err,
			"exchange", cfg.AMQPExchange)
		return nil
	}
	amqpLogger.Info("Publishing expense notifications", "exchange", cfg.AMQPExchange)
	return client
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := cli.LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	if !cfg.AMQPEnabled() {
		return errors.New("watch requires AMQP_URL")
	}
	if reportInterval <= 0 {
		return fmt.Errorf("invalid --report-every %v: must be positive", reportInterval)
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := cli.ShutdownContext(cmd.Context(), logger)
	defer cancel()

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPConnectAttempts)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer client.Close()

	mirror := ledger.New()
	if cfg.SeedData {
		mirror = ledger.NewSeeded()
	}
	audit := worker.NewAuditWorker(logger, mirror)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := client.ConsumeExpenseEvents(gctx, cfg.AMQPQueue, audit.HandleExpenseEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		audit.RunReports(gctx, reportInterval)
		return nil
	})

	err = g.Wait()
	audit.Report(context.Background())
	return err
}

func runSummary(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	if summaryNow != "" {
		t, err := time.Parse(core.DateLayout, summaryNow)
		if err != nil {
			return fmt.Errorf("invalid --now %q: %w", summaryNow, err)
		}
		now = t
	}

	s := stats.Compute(ledger.SeedExpenses(), now)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total expenses:  %s\n", core.FormatAmount(s.Total))
	fmt.Fprintf(out, "This month:      %s (%s)\n", core.FormatAmount(s.ThisMonth), core.MonthLabel(now))
	fmt.Fprintf(out, "Monthly change:  %s %s\n", core.FormatSignedAmount(s.Change), s.Trend())
	fmt.Fprintln(out, "By category:")
	for _, ct := range s.ByCategory {
		fmt.Fprintf(out, "  %-20s %10s\n", ct.Category, core.FormatAmount(ct.Amount))
	}
	return nil
}
