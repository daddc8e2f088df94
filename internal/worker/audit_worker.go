// Package worker rebuilds a read-only copy of a running tracker's expenses
// from its change notifications.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	applog "expensetracker/internal/log"
	"expensetracker/internal/stats"
)

// ErrMalformedEvent is returned for events that cannot describe an expense.
var ErrMalformedEvent = errors.New("malformed expense event")

// AuditWorker mirrors added and removed expenses into a shadow store.
// Redelivered events are harmless: inserts of a known id and removals of an
// unknown id are no-ops.
type AuditWorker struct {
	mirror *ledger.Store
	logger *applog.Logger
	now    func() time.Time

	lastVersion atomic.Uint64
}

// NewAuditWorker mirrors into mirror, which must start with the same records
// as the tracker it follows (ledger.NewSeeded when the tracker seeds).
func NewAuditWorker(logger *applog.Logger, mirror *ledger.Store) *AuditWorker {
	w := &AuditWorker{
		mirror: mirror,
		logger: logger.WithComponent(applog.ComponentAMQP),
		now:    func() time.Time { return time.Now().UTC() },
	}
	w.lastVersion.Store(mirror.Version())
	return w
}

// HandleExpenseEvent applies one event to the mirror. Unknown event types are
// skipped so they are not redelivered forever.
func (w *AuditWorker) HandleExpenseEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	if ev == nil || ev.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedEvent)
	}

	switch ev.Type {
	case amqp.EventExpenseAdded:
		e := core.Expense{
			ID:          ev.ID,
			Title:       ev.Title,
			Amount:      ev.Amount,
			Category:    ev.Category,
			Date:        ev.Date,
			Description: ev.Description,
		}
		if !w.mirror.Insert(e) {
			w.logger.DebugContext(ctx, "Duplicate add event ignored", applog.FieldExpenseID, ev.ID)
			return nil
		}
	case amqp.EventExpenseRemoved:
		if _, ok := w.mirror.Remove(ev.ID); !ok {
			w.logger.DebugContext(ctx, "Remove event for unknown expense", applog.FieldExpenseID, ev.ID)
			return nil
		}
	default:
		w.logger.WarnContext(ctx, "Skipping unknown event type",
			applog.FieldEventType, ev.Type,
			applog.FieldExpenseID, ev.ID)
		return nil
	}

	for {
		seen := w.lastVersion.Load()
		if ev.Version <= seen || w.lastVersion.CompareAndSwap(seen, ev.Version) {
			break
		}
	}
	w.logger.InfoContext(ctx, "Expense event applied",
		applog.FieldEventType, ev.Type,
		applog.FieldExpenseID, ev.ID,
		applog.FieldTitle, ev.Title,
		applog.FieldAmount, ev.Amount.String(),
		applog.FieldVersion, ev.Version)
	return nil
}

// Len is the number of mirrored expenses.
func (w *AuditWorker) Len() int {
	return w.mirror.Len()
}

// LastVersion is the highest store version seen so far.
func (w *AuditWorker) LastVersion() uint64 {
	return w.lastVersion.Load()
}

// Summary computes the dashboard figures over the mirror.
func (w *AuditWorker) Summary() stats.Summary {
	return stats.Compute(w.mirror.All(), w.now())
}

// Report logs the current figures.
func (w *AuditWorker) Report(ctx context.Context) {
	s := w.Summary()
	w.logger.InfoContext(ctx, "Mirrored expense totals",
		applog.FieldOperation, applog.OpSummary,
		"expenses", w.Len(),
		"total", core.FormatAmount(s.Total),
		"this_month", core.FormatAmount(s.ThisMonth),
		"change", core.FormatSignedAmount(s.Change),
		applog.FieldVersion, w.LastVersion())
}

// RunReports calls Report every interval until ctx is cancelled.
func (w *AuditWorker) RunReports(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Report(ctx)
		}
	}
}
