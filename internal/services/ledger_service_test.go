package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parthg59/expense-tracker/internal/amqp"
	"github.com/Parthg59/expense-tracker/internal/core"
	"github.com/Parthg59/expense-tracker/internal/ledger/memory"
)

type recordingPublisher struct {
	events []*amqp.LedgerEventMessage
	err    error
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	p.events = append(p.events, msg)
	return p.err
}

func serviceTxn() core.Transaction {
	return core.Transaction{
		WalletID:      "w1",
		Amount:        core.Money{Cents: 1500},
		Category:      "dining",
		Label:         "Lunch",
		PaymentMethod: core.Cash,
		Date:          core.NewDate(2025, 6, 1),
	}
}

func TestCreateWalletAssignsIdentifier(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(memory.New(), nil)

	w, err := svc.CreateWallet(ctx, "Personal", core.USD, core.Money{Cents: 500000})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, int64(500000), w.Balance.Cents)
	assert.Equal(t, int64(500000), w.InitialBalance.Cents)
}

func TestCreateTransactionPublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	created, err := svc.CreateTransaction(ctx, serviceTxn())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, amqp.ActionCreate, pub.events[0].Action)
	assert.Equal(t, created.ID, pub.events[0].TransactionID)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewLedgerService(store, &recordingPublisher{err: errors.New("broker down")})

	created, err := svc.CreateTransaction(ctx, serviceTxn())
	require.NoError(t, err, "store write is authoritative; mirroring is best effort")

	txns, _ := store.ListTransactions(ctx)
	require.Len(t, txns, 1)
	assert.Equal(t, created.ID, txns[0].ID)
}

func TestNilPublisherSkipsMirroring(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(memory.New(), nil)
	_, err := svc.CreateTransaction(ctx, serviceTxn())
	require.NoError(t, err)
}

func TestReplaceTransactionKeepsIdentifier(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	store := memory.New()
	svc := NewLedgerService(store, pub)

	created, err := svc.CreateTransaction(ctx, serviceTxn())
	require.NoError(t, err)

	edited := serviceTxn()
	edited.Label = "Dinner"
	replaced, err := svc.ReplaceTransaction(ctx, created.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)

	txns, _ := store.ListTransactions(ctx)
	require.Len(t, txns, 1)
	assert.Equal(t, "Dinner", txns[0].Label)

	require.Len(t, pub.events, 2)
	assert.Equal(t, amqp.ActionReplace, pub.events[1].Action)
}

func TestRemoveTransaction(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	store := memory.New()
	svc := NewLedgerService(store, pub)

	created, err := svc.CreateTransaction(ctx, serviceTxn())
	require.NoError(t, err)
	require.NoError(t, svc.RemoveTransaction(ctx, created.ID))

	txns, _ := store.ListTransactions(ctx)
	assert.Empty(t, txns)
	assert.Equal(t, amqp.ActionRemove, pub.events[1].Action)

	assert.Error(t, svc.RemoveTransaction(ctx, created.ID))
}

func TestCreateBudgetEnforcesRules(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewLedgerService(store, nil)

	b := core.Budget{WalletID: "w1", Category: "dining", Limit: core.Money{Cents: 40000}}
	require.NoError(t, svc.CreateBudget(ctx, b))

	err := svc.CreateBudget(ctx, b)
	assert.ErrorIs(t, err, core.ErrDuplicateBudget)

	budgets, _ := store.ListBudgets(ctx)
	assert.Len(t, budgets, 1)

	bad := core.Budget{WalletID: "w1", Category: "travel", Limit: core.Money{Cents: 0}}
	assert.ErrorIs(t, svc.CreateBudget(ctx, bad), core.ErrInvalidBudgetLimit)
}

func TestCloseWithMemoryStore(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	assert.NoError(t, svc.Close(), "memory store owns no resources")
}
