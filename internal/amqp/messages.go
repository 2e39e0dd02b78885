package amqp

import (
	"encoding/json"
	"time"

	"github.com/Parthg59/expense-tracker/internal/core"
)

// LedgerEventAction identifies what happened to a transaction.
type LedgerEventAction string

const (
	ActionCreate  LedgerEventAction = "create"
	ActionReplace LedgerEventAction = "replace"
	ActionRemove  LedgerEventAction = "remove"
)

// LedgerEventMessage mirrors one transaction mutation to the archive
// worker. It carries the full payload because the primary store may be
// memory-backed: the worker cannot fetch the entity from anywhere else.
type LedgerEventMessage struct {
	Action        LedgerEventAction `json:"action"`
	TransactionID string            `json:"transaction_id"`
	WalletID      string            `json:"wallet_id"`
	AmountCents   int64             `json:"amount_cents,omitempty"`
	Category      string            `json:"category,omitempty"`
	Label         string            `json:"label,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Date          time.Time         `json:"date,omitempty"`
	IsRecurring   bool              `json:"is_recurring,omitempty"`
	Recurrence    string            `json:"recurrence,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// NewLedgerEventMessage builds an event carrying the transaction payload.
func NewLedgerEventMessage(action LedgerEventAction, t core.Transaction) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:        action,
		TransactionID: t.ID,
		WalletID:      t.WalletID,
		AmountCents:   t.Amount.Cents,
		Category:      t.Category,
		Label:         t.Label,
		Notes:         t.Notes,
		PaymentMethod: string(t.PaymentMethod),
		Date:          t.Date.Time,
		IsRecurring:   t.IsRecurring,
		Recurrence:    string(t.Recurrence),
		Timestamp:     time.Now(),
	}
}

// Transaction reconstructs the domain entity from the message payload.
func (m *LedgerEventMessage) Transaction() core.Transaction {
	return core.Transaction{
		ID:            m.TransactionID,
		WalletID:      m.WalletID,
		Amount:        core.Money{Cents: m.AmountCents},
		Category:      m.Category,
		Label:         m.Label,
		Notes:         m.Notes,
		PaymentMethod: core.PaymentMethod(m.PaymentMethod),
		Date:          core.Date{Time: m.Date},
		IsRecurring:   m.IsRecurring,
		Recurrence:    core.RecurrenceType(m.Recurrence),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
