package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Parthg59/expense-tracker/internal/amqp"
	"github.com/Parthg59/expense-tracker/internal/budget"
	"github.com/Parthg59/expense-tracker/internal/core"
	"github.com/Parthg59/expense-tracker/internal/ledger"
)

// EventPublisher mirrors transaction mutations to the archive worker.
// A nil publisher disables mirroring entirely.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// LedgerService orchestrates ledger writes: identifier assignment,
// validation at the write boundary, and optional event mirroring. Publish
// failures never fail the user operation; the store write is authoritative.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// CreateWallet assigns a fresh identifier and persists the wallet. Balance
// and InitialBalance are both set to the opening amount and never touched
// again by transaction writes.
func (s *LedgerService) CreateWallet(ctx context.Context, name string, currency core.Currency, opening core.Money) (core.Wallet, error) {
	w := core.Wallet{
		ID:             uuid.NewString(),
		Name:           name,
		Currency:       currency,
		Balance:        opening,
		InitialBalance: opening,
		CreatedAt:      core.Date{Time: time.Now().UTC()},
	}
	if err := s.store.AppendWallet(ctx, w); err != nil {
		return core.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}

	slog.InfoContext(ctx, "Wallet created",
		"wallet_id", w.ID,
		"name", w.Name,
		"currency", w.Currency,
		"initial_balance_cents", w.InitialBalance.Cents)
	return w, nil
}

// CreateTransaction assigns a fresh identifier, persists the transaction,
// and publishes a create event.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	if err := s.store.AppendTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, amqp.NewLedgerEventMessage(amqp.ActionCreate, t))

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", t.ID,
		"wallet_id", t.WalletID,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return t, nil
}

// ReplaceTransaction swaps the entry with the given id in place and
// publishes a replace event. The identifier is preserved.
func (s *LedgerService) ReplaceTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	if err := s.store.ReplaceTransaction(ctx, id, t); err != nil {
		return core.Transaction{}, fmt.Errorf("replace transaction: %w", err)
	}
	t.ID = id

	s.publish(ctx, amqp.NewLedgerEventMessage(amqp.ActionReplace, t))

	slog.InfoContext(ctx, "Transaction replaced",
		"transaction_id", id,
		"wallet_id", t.WalletID,
		"amount_cents", t.Amount.Cents)
	return t, nil
}

// RemoveTransaction deletes by identifier and publishes a remove event.
func (s *LedgerService) RemoveTransaction(ctx context.Context, id string) error {
	if err := s.store.RemoveTransaction(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}

	s.publish(ctx, amqp.NewLedgerEventMessage(amqp.ActionRemove, core.Transaction{ID: id}))

	slog.InfoContext(ctx, "Transaction removed", "transaction_id", id)
	return nil
}

// CreateBudget enforces the creation rules (positive limit, no duplicate
// wallet+category pair) before writing.
func (s *LedgerService) CreateBudget(ctx context.Context, b core.Budget) error {
	existing, err := s.store.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("list budgets: %w", err)
	}
	if err := budget.ValidateNew(b, existing); err != nil {
		return err
	}
	if err := s.store.AppendBudget(ctx, b); err != nil {
		return fmt.Errorf("create budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget created",
		"wallet_id", b.WalletID,
		"category", b.Category,
		"limit_cents", b.Limit.Cents)
	return nil
}

// RemoveBudget deletes a budget by its composite key.
func (s *LedgerService) RemoveBudget(ctx context.Context, walletID, category string) error {
	if err := s.store.RemoveBudget(ctx, walletID, category); err != nil {
		return fmt.Errorf("remove budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget removed", "wallet_id", walletID, "category", category)
	return nil
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.LedgerEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		// The store write already succeeded; mirroring is best effort.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", msg.Action,
			"transaction_id", msg.TransactionID,
			"error", err)
	}
}

// Close releases the underlying store when it owns resources.
func (s *LedgerService) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close ledger store: %w", err)
		}
	}
	return nil
}
