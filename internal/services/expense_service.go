package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/filter"
	"expensetracker/internal/ledger"
	applog "expensetracker/internal/log"
	"expensetracker/internal/stats"
)

// Publisher fans out change notifications. *amqp.Client implements it.
type Publisher interface {
	PublishExpenseEvent(ctx context.Context, ev *amqp.ExpenseEvent) error
	Close() error
}

// Metrics counts store operations since start.
type Metrics struct {
	Added           int64
	Rejected        int64
	Deleted         int64
	DeleteMisses    int64
	Published       int64
	PublishFailures int64
}

// ExpenseService orchestrates expense operations across the session store
// and the optional notification publisher.
type ExpenseService struct {
	store     *ledger.Store
	publisher Publisher
	logger    *applog.Logger
	events    *applog.StructuredLogger

	added           atomic.Int64
	rejected        atomic.Int64
	deleted         atomic.Int64
	deleteMisses    atomic.Int64
	published       atomic.Int64
	publishFailures atomic.Int64
}

// NewExpenseService wraps store. publisher may be nil.
func NewExpenseService(store *ledger.Store, publisher Publisher, logger *applog.Logger) *ExpenseService {
	logger = logger.WithComponent(applog.ComponentExpense)
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
	}
}

// CreateExpense adds a complete draft at the head of the store. An incomplete
// draft is dropped without error and ok is false. The returned event carries
// the store version produced by this add.
func (s *ExpenseService) CreateExpense(ctx context.Context, d core.Draft) (ledger.Event, bool) {
	ev, ok := s.store.Add(d)
	if !ok {
		s.rejected.Add(1)
		s.logger.DebugContext(ctx, "Ignored incomplete expense draft", applog.FieldOperation, applog.OpCreate)
		return ev, false
	}
	e := ev.Expense
	s.added.Add(1)
	s.events.LogExpenseCreated(ctx, e.ID, e.Title, e.Amount, e.Category, e.Date)

	s.publish(ctx, amqp.EventExpenseAdded, ev)
	return ev, true
}

// DeleteExpense removes the record with id. Unknown ids are a no-op and
// report false; the event then carries the unchanged version.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) (ledger.Event, bool) {
	ev, ok := s.store.Remove(id)
	if !ok {
		s.deleteMisses.Add(1)
		s.logger.DebugContext(ctx, "Delete of unknown expense ignored", applog.FieldExpenseID, id)
		return ev, false
	}
	s.deleted.Add(1)
	s.events.LogExpenseDeleted(ctx, id)

	s.publish(ctx, amqp.EventExpenseRemoved, ev)
	return ev, true
}

// List returns the records matching c, most recent first.
func (s *ExpenseService) List(c filter.Criteria) []core.Expense {
	return filter.Apply(s.store.All(), c)
}

// Summary computes the dashboard figures over the whole store.
func (s *ExpenseService) Summary(now time.Time) stats.Summary {
	return stats.Compute(s.store.All(), now)
}

// Breakdown returns the category totals together with the store version
// they were computed from.
func (s *ExpenseService) Breakdown() ([]stats.CategoryTotal, uint64) {
	items, version := s.store.Snapshot()
	return stats.Breakdown(items), version
}

// Version changes after every mutation of the store.
func (s *ExpenseService) Version() uint64 {
	return s.store.Version()
}

// Len returns the number of stored records.
func (s *ExpenseService) Len() int {
	return s.store.Len()
}

func (s *ExpenseService) Metrics() Metrics {
	return Metrics{
		Added:           s.added.Load(),
		Rejected:        s.rejected.Load(),
		Deleted:         s.deleted.Load(),
		DeleteMisses:    s.deleteMisses.Load(),
		Published:       s.published.Load(),
		PublishFailures: s.publishFailures.Load(),
	}
}

// publish never fails the caller: the store stays the source of truth.
func (s *ExpenseService) publish(ctx context.Context, eventType string, ev ledger.Event) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewExpenseEvent(eventType, ev.Expense, ev.Version)
	if err := s.publisher.PublishExpenseEvent(ctx, msg); err != nil {
		s.publishFailures.Add(1)
		s.logger.ErrorContext(ctx, "Failed to publish expense event",
			applog.FieldEventType, eventType,
			applog.FieldExpenseID, ev.Expense.ID,
			applog.FieldVersion, ev.Version,
			applog.FieldError, err)
		return
	}
	s.published.Add(1)
}

// Close releases the publisher connection.
func (s *ExpenseService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
