// Package ledger holds the session's ordered collection of expenses.
package ledger

import (
	"sync"

	"github.com/google/uuid"

	"expensetracker/internal/core"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventAdded   EventKind = "expense.added"
	EventRemoved EventKind = "expense.removed"
)

// Event describes a completed mutation of the store. Version is the store
// version right after that mutation.
type Event struct {
	Kind    EventKind
	Expense core.Expense
	Version uint64
}

// Store keeps expenses most-recent-first. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	items   []core.Expense
	version uint64
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{newID: func() string { return uuid.New().String() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add mints an id for a complete draft and inserts the record at the head.
// Incomplete drafts are ignored: the store is left untouched, ok is false and
// the event only carries the current version.
func (s *Store) Add(d core.Draft) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !d.Complete() {
		return Event{Version: s.version}, false
	}
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	e, _ := d.Expense(id)
	return s.insertLocked(e), true
}

// Insert places a fully-populated record at the head. Records with an empty
// or already-present id are refused. The category is not checked.
func (s *Store) Insert(e core.Expense) bool {
	if e.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(e.ID) >= 0 {
		return false
	}
	s.insertLocked(e)
	return true
}

// Remove deletes the record with the given id. Unknown ids are a no-op: ok is
// false and the event only carries the current version.
func (s *Store) Remove(id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Event{Version: s.version}, false
	}
	removed := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.version++
	return Event{Kind: EventRemoved, Expense: removed, Version: s.version}, true
}

// All returns a copy of the records in store order.
func (s *Store) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...)
}

// Snapshot returns a copy of the records together with the version they
// belong to.
func (s *Store) Snapshot() ([]core.Expense, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), s.version
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return core.Expense{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Version increases by one on every mutation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) insertLocked(e core.Expense) Event {
	items := make([]core.Expense, 0, len(s.items)+1)
	items = append(items, e)
	s.items = append(items, s.items...)
	s.version++
	return Event{Kind: EventAdded, Expense: e, Version: s.version}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
