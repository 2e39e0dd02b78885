// Package memory implements the ledger store as mutex-guarded in-memory
// collections. It is the session-scoped backend: state lives exactly as
// long as the process, matching the original session-storage semantics.
package memory

import (
	"context"
	"sync"

	"github.com/Parthg59/expense-tracker/internal/core"
)

type Store struct {
	mu            sync.Mutex
	wallets       []core.Wallet
	transactions  []core.Transaction
	budgets       []core.Budget
	currentWallet string
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListWallets(_ context.Context) ([]core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Wallet(nil), s.wallets...), nil
}

func (s *Store) AppendWallet(_ context.Context, w core.Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = append(s.wallets, w)
	// The first wallet becomes the current one.
	if s.currentWallet == "" {
		s.currentWallet = w.ID
	}
	return nil
}

func (s *Store) CurrentWallet(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWallet, nil
}

func (s *Store) SetCurrentWallet(_ context.Context, walletID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets {
		if w.ID == walletID {
			s.currentWallet = walletID
			return nil
		}
	}
	return core.ErrWalletNotFound
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) AppendTransaction(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
	return nil
}

func (s *Store) ReplaceTransaction(_ context.Context, id string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == id {
			t.ID = id // identifier is preserved across edits
			s.transactions[i] = t
			return nil
		}
	}
	return core.ErrTransactionNotFound
}

func (s *Store) RemoveTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return core.ErrTransactionNotFound
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) AppendBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.WalletID == b.WalletID && existing.Category == b.Category {
			return core.ErrDuplicateBudget
		}
	}
	s.budgets = append(s.budgets, b)
	return nil
}

func (s *Store) RemoveBudget(_ context.Context, walletID, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.budgets {
		if existing.WalletID == walletID && existing.Category == category {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return core.ErrBudgetNotFound
}

// Reset clears every collection and the current-wallet pointer.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = nil
	s.transactions = nil
	s.budgets = nil
	s.currentWallet = ""
	return nil
}
