// Package ledger defines the ports for the collections owned by the
// ledger store: wallets, transactions, budgets, and the current-wallet
// pointer. Backends guarantee read-your-writes consistency within a
// session; concurrent writers from other processes or tabs are out of
// scope and resolve as last-writer-wins.
package ledger

import (
	"context"

	"github.com/Parthg59/expense-tracker/internal/core"
)

type (
	WalletStore interface {
		// ListWallets returns a snapshot copy in insertion order.
		ListWallets(ctx context.Context) ([]core.Wallet, error)
		AppendWallet(ctx context.Context, w core.Wallet) error
		// CurrentWallet returns the current-wallet pointer, empty when unset.
		CurrentWallet(ctx context.Context) (string, error)
		SetCurrentWallet(ctx context.Context, walletID string) error
	}

	TransactionStore interface {
		// ListTransactions returns a snapshot copy in insertion order.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		AppendTransaction(ctx context.Context, t core.Transaction) error
		// ReplaceTransaction swaps the entry with the given id in place,
		// preserving the identifier and collection length.
		ReplaceTransaction(ctx context.Context, id string, t core.Transaction) error
		RemoveTransaction(ctx context.Context, id string) error
	}

	BudgetStore interface {
		// ListBudgets returns a snapshot copy in insertion order.
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		// AppendBudget rejects a budget whose wallet+category pair already
		// exists with core.ErrDuplicateBudget.
		AppendBudget(ctx context.Context, b core.Budget) error
		RemoveBudget(ctx context.Context, walletID, category string) error
	}

	// Store is the full ledger contract. Reset clears every collection and
	// the current-wallet pointer; it is the logout contract.
	Store interface {
		WalletStore
		TransactionStore
		BudgetStore
		Reset(ctx context.Context) error
	}
)
