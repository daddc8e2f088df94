package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// Event types double as routing keys on the topic exchange.
const (
	EventExpenseAdded   = "expense.added"
	EventExpenseRemoved = "expense.removed"
)

// ExpenseEvent notifies subscribers that the session store changed.
type ExpenseEvent struct {
	Type        string          `json:"type"`
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Version     uint64          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewExpenseEvent builds an event of the given type for e.
func NewExpenseEvent(eventType string, e core.Expense, version uint64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:        eventType,
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
		Version:     version,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON decodes an event published by this service.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
