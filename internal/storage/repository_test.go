package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parthg59/expense-tracker/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sqliteWallet(id string) core.Wallet {
	return core.Wallet{
		ID:             id,
		Name:           "Wallet " + id,
		Currency:       core.USD,
		Balance:        core.Money{Cents: 500000},
		InitialBalance: core.Money{Cents: 500000},
		CreatedAt:      core.NewDate(2025, 1, 1),
	}
}

func sqliteTxn(id string) core.Transaction {
	return core.Transaction{
		ID:            id,
		WalletID:      "w1",
		Amount:        core.Money{Cents: 2599},
		Category:      "food-drinks",
		Label:         "Groceries",
		Notes:         "market",
		PaymentMethod: core.DebitCard,
		Date:          core.NewDate(2025, 6, 12),
	}
}

func TestWalletRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.AppendWallet(ctx, sqliteWallet("w1")))
	require.NoError(t, repo.AppendWallet(ctx, sqliteWallet("w2")))

	wallets, err := repo.ListWallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "w1", wallets[0].ID)
	assert.Equal(t, core.USD, wallets[0].Currency)
	assert.Equal(t, int64(500000), wallets[0].InitialBalance.Cents)

	cur, err := repo.CurrentWallet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "w1", cur, "first wallet becomes current")

	require.NoError(t, repo.SetCurrentWallet(ctx, "w2"))
	cur, _ = repo.CurrentWallet(ctx)
	assert.Equal(t, "w2", cur)

	assert.ErrorIs(t, repo.SetCurrentWallet(ctx, "missing"), core.ErrWalletNotFound)
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	recurring := sqliteTxn("t1")
	recurring.IsRecurring = true
	recurring.Recurrence = core.Monthly
	require.NoError(t, repo.AppendTransaction(ctx, recurring))
	require.NoError(t, repo.AppendTransaction(ctx, sqliteTxn("t2")))

	txns, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "t1", txns[0].ID)
	assert.True(t, txns[0].IsRecurring)
	assert.Equal(t, core.Monthly, txns[0].Recurrence)
	assert.Equal(t, "market", txns[0].Notes)
	assert.Equal(t, core.DebitCard, txns[0].PaymentMethod)
	assert.Equal(t, 2025, txns[0].Date.Year())

	edited := sqliteTxn("whatever")
	edited.Label = "Dinner out"
	edited.Amount = core.Money{Cents: 7800}
	require.NoError(t, repo.ReplaceTransaction(ctx, "t2", edited))

	txns, _ = repo.ListTransactions(ctx)
	require.Len(t, txns, 2, "replace keeps the collection length")
	assert.Equal(t, "t2", txns[1].ID)
	assert.Equal(t, "Dinner out", txns[1].Label)

	assert.ErrorIs(t, repo.ReplaceTransaction(ctx, "missing", edited), core.ErrTransactionNotFound)

	require.NoError(t, repo.RemoveTransaction(ctx, "t1"))
	assert.ErrorIs(t, repo.RemoveTransaction(ctx, "t1"), core.ErrTransactionNotFound)
	txns, _ = repo.ListTransactions(ctx)
	assert.Len(t, txns, 1)
}

func TestBudgetDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b := core.Budget{WalletID: "w1", Category: "dining", Limit: core.Money{Cents: 40000}}
	require.NoError(t, repo.AppendBudget(ctx, b))
	assert.ErrorIs(t, repo.AppendBudget(ctx, b), core.ErrDuplicateBudget)

	budgets, err := repo.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)

	require.NoError(t, repo.RemoveBudget(ctx, "w1", "dining"))
	assert.ErrorIs(t, repo.RemoveBudget(ctx, "w1", "dining"), core.ErrBudgetNotFound)
}

func TestResetClearsAllTables(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.AppendWallet(ctx, sqliteWallet("w1")))
	require.NoError(t, repo.AppendTransaction(ctx, sqliteTxn("t1")))
	require.NoError(t, repo.AppendBudget(ctx, core.Budget{WalletID: "w1", Category: "dining", Limit: core.Money{Cents: 100}}))

	require.NoError(t, repo.Reset(ctx))

	wallets, _ := repo.ListWallets(ctx)
	txns, _ := repo.ListTransactions(ctx)
	budgets, _ := repo.ListBudgets(ctx)
	cur, _ := repo.CurrentWallet(ctx)
	assert.Empty(t, wallets)
	assert.Empty(t, txns)
	assert.Empty(t, budgets)
	assert.Empty(t, cur)
}

func TestAppendRejectsInvalidEntities(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	assert.Error(t, repo.AppendWallet(ctx, core.Wallet{}))
	assert.Error(t, repo.AppendTransaction(ctx, core.Transaction{}))
	assert.Error(t, repo.AppendBudget(ctx, core.Budget{WalletID: "w", Category: "c", Limit: core.Money{Cents: 0}}))
}
