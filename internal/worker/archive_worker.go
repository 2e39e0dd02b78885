// Package worker mirrors ledger events into a durable SQLite archive.
// The server's primary store may be memory-backed and session-scoped; the
// archive is what survives across sessions.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Parthg59/expense-tracker/internal/amqp"
	"github.com/Parthg59/expense-tracker/internal/core"
	"github.com/Parthg59/expense-tracker/internal/ledger"
)

// ArchiveWorker applies ledger event messages to an archive store.
type ArchiveWorker struct {
	archive ledger.TransactionStore
}

func NewArchiveWorker(archive ledger.TransactionStore) *ArchiveWorker {
	return &ArchiveWorker{archive: archive}
}

// HandleEvent applies a single ledger event. Events are idempotent where
// the broker may redeliver: a create that already exists degrades to a
// replace, and a remove of a missing entry is treated as done.
func (w *ArchiveWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"action", msg.Action,
		"transaction_id", msg.TransactionID)

	switch msg.Action {
	case amqp.ActionCreate:
		return w.applyCreate(ctx, msg.Transaction())
	case amqp.ActionReplace:
		return w.applyReplace(ctx, msg.Transaction())
	case amqp.ActionRemove:
		return w.applyRemove(ctx, msg.TransactionID)
	default:
		return fmt.Errorf("unknown ledger event action: %s", msg.Action)
	}
}

func (w *ArchiveWorker) applyCreate(ctx context.Context, t core.Transaction) error {
	err := w.archive.AppendTransaction(ctx, t)
	if err == nil {
		return nil
	}
	// Redelivery after a partial ack: fall back to replacing the existing row.
	if replaceErr := w.archive.ReplaceTransaction(ctx, t.ID, t); replaceErr == nil {
		slog.WarnContext(ctx, "Create event applied as replace",
			"transaction_id", t.ID)
		return nil
	}
	return fmt.Errorf("archive create: %w", err)
}

func (w *ArchiveWorker) applyReplace(ctx context.Context, t core.Transaction) error {
	err := w.archive.ReplaceTransaction(ctx, t.ID, t)
	if errors.Is(err, core.ErrTransactionNotFound) {
		// The archive never saw the create; append instead of dropping the event.
		if appendErr := w.archive.AppendTransaction(ctx, t); appendErr != nil {
			return fmt.Errorf("archive replace-as-create: %w", appendErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("archive replace: %w", err)
	}
	return nil
}

func (w *ArchiveWorker) applyRemove(ctx context.Context, id string) error {
	err := w.archive.RemoveTransaction(ctx, id)
	if errors.Is(err, core.ErrTransactionNotFound) {
		slog.WarnContext(ctx, "Remove event for unknown transaction, skipping", "transaction_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("archive remove: %w", err)
	}
	return nil
}
