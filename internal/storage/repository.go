package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Parthg59/expense-tracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the ledger collections in a local SQLite
// database. Writes follow the whole-entity read/replace contract of the
// ledger store; there is no delta or partial update path.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListWallets implements ledger.WalletStore.
func (r *SQLiteRepository) ListWallets(ctx context.Context) ([]core.Wallet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, currency, balance_cents, initial_balance_cents, created_at
		FROM wallets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []core.Wallet
	for rows.Next() {
		var w core.Wallet
		var currency string
		var createdAt time.Time
		if err := rows.Scan(&w.ID, &w.Name, &currency, &w.Balance.Cents, &w.InitialBalance.Cents, &createdAt); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		w.Currency = core.Currency(currency)
		w.CreatedAt = core.Date{Time: createdAt}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// AppendWallet implements ledger.WalletStore.
func (r *SQLiteRepository) AppendWallet(ctx context.Context, w core.Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, name, currency, balance_cents, initial_balance_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, string(w.Currency), w.Balance.Cents, w.InitialBalance.Cents, w.CreatedAt.Time)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}

	// The first wallet becomes the current one.
	cur, err := r.CurrentWallet(ctx)
	if err != nil {
		return err
	}
	if cur == "" {
		if err := r.SetCurrentWallet(ctx, w.ID); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Wallet saved to SQLite",
		"id", w.ID,
		"name", w.Name,
		"currency", w.Currency,
		"initial_balance_cents", w.InitialBalance.Cents)
	return nil
}

// CurrentWallet implements ledger.WalletStore.
func (r *SQLiteRepository) CurrentWallet(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM session WHERE key = 'current_wallet'`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read current wallet: %w", err)
	}
	return id, nil
}

// SetCurrentWallet implements ledger.WalletStore.
func (r *SQLiteRepository) SetCurrentWallet(ctx context.Context, walletID string) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM wallets WHERE id = ?`, walletID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check wallet: %w", err)
	}
	if exists == 0 {
		return core.ErrWalletNotFound
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES ('current_wallet', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, walletID)
	if err != nil {
		return fmt.Errorf("set current wallet: %w", err)
	}
	return nil
}

// ListTransactions implements ledger.TransactionStore.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, wallet_id, amount_cents, category, label, notes,
		       payment_method, tx_date, is_recurring, recurrence
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// AppendTransaction implements ledger.TransactionStore.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, wallet_id, amount_cents, category, label, notes,
		                          payment_method, tx_date, is_recurring, recurrence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.WalletID, t.Amount.Cents, t.Category, t.Label, t.Notes,
		string(t.PaymentMethod), t.Date.Time, t.IsRecurring, string(t.Recurrence))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"wallet_id", t.WalletID,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return nil
}

// ReplaceTransaction implements ledger.TransactionStore.
func (r *SQLiteRepository) ReplaceTransaction(ctx context.Context, id string, t core.Transaction) error {
	t.ID = id // identifier is preserved across edits
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET wallet_id = ?, amount_cents = ?, category = ?, label = ?, notes = ?,
		    payment_method = ?, tx_date = ?, is_recurring = ?, recurrence = ?
		WHERE id = ?`,
		t.WalletID, t.Amount.Cents, t.Category, t.Label, t.Notes,
		string(t.PaymentMethod), t.Date.Time, t.IsRecurring, string(t.Recurrence), id)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction rows: %w", err)
	}
	if n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

// RemoveTransaction implements ledger.TransactionStore.
func (r *SQLiteRepository) RemoveTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows: %w", err)
	}
	if n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

// ListBudgets implements ledger.BudgetStore.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT wallet_id, category, limit_cents FROM budgets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.WalletID, &b.Category, &b.Limit.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// AppendBudget implements ledger.BudgetStore. Duplicate wallet+category
// pairs are rejected, never overwritten.
func (r *SQLiteRepository) AppendBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM budgets WHERE wallet_id = ? AND category = ?`,
		b.WalletID, b.Category).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check budget: %w", err)
	}
	if exists > 0 {
		return core.ErrDuplicateBudget
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO budgets (wallet_id, category, limit_cents) VALUES (?, ?, ?)`,
		b.WalletID, b.Category, b.Limit.Cents)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// RemoveBudget implements ledger.BudgetStore.
func (r *SQLiteRepository) RemoveBudget(ctx context.Context, walletID, category string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE wallet_id = ? AND category = ?`, walletID, category)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget rows: %w", err)
	}
	if n == 0 {
		return core.ErrBudgetNotFound
	}
	return nil
}

// Reset clears every collection and the current-wallet pointer. This is the
// logout contract.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM transactions`,
		`DELETE FROM budgets`,
		`DELETE FROM wallets`,
		`DELETE FROM session`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset ledger: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	slog.InfoContext(ctx, "Ledger reset")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var payment, recurrence string
	var txDate time.Time
	err := row.Scan(&t.ID, &t.WalletID, &t.Amount.Cents, &t.Category, &t.Label,
		&t.Notes, &payment, &txDate, &t.IsRecurring, &recurrence)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.PaymentMethod = core.PaymentMethod(payment)
	t.Date = core.Date{Time: txDate}
	t.Recurrence = core.RecurrenceType(recurrence)
	return t, nil
}
