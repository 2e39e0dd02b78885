package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/ledger/memory"
)

func TestDemoAuthenticator(t *testing.T) {
	auth := NewDemoAuthenticator(0)

	user, err := auth.Authenticate(context.Background(), "parth", "12345")
	require.NoError(t, err)
	assert.Equal(t, "parth", user.Username)
	assert.NotEmpty(t, user.ID)

	_, err = auth.Authenticate(context.Background(), "", "12345")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = auth.Authenticate(context.Background(), "parth", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = auth.Authenticate(context.Background(), "   ", "12345")
	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestDemoAuthenticatorDelay(t *testing.T) {
	auth := NewDemoAuthenticator(20 * time.Millisecond)

	start := time.Now()
	_, err := auth.Authenticate(context.Background(), "parth", "12345")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDemoAuthenticatorHonorsContext(t *testing.T) {
	auth := NewDemoAuthenticator(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := auth.Authenticate(ctx, "parth", "12345")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRemoteAuthenticatorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "parth", req.Username)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]string{"id": "u-1", "username": "parth"},
		})
	}))
	defer srv.Close()

	auth := NewRemoteAuthenticator(srv.URL)
	user, err := auth.Authenticate(context.Background(), "parth", "12345")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "parth", user.Username)
}

func TestRemoteAuthenticatorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "account locked",
		})
	}))
	defer srv.Close()

	auth := NewRemoteAuthenticator(srv.URL)
	_, err := auth.Authenticate(context.Background(), "parth", "12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Contains(t, err.Error(), "account locked")
}

func TestSeederPopulatesEmptyLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seeder := NewSeeder(store)

	require.NoError(t, seeder.Seed(ctx))

	wallets, _ := store.ListWallets(ctx)
	require.Len(t, wallets, 1)
	assert.Equal(t, int64(seedOpeningCents), wallets[0].InitialBalance.Cents)

	current, _ := store.CurrentWallet(ctx)
	assert.Equal(t, wallets[0].ID, current)

	txns, _ := store.ListTransactions(ctx)
	assert.Len(t, txns, seedTransactions)
	for _, txn := range txns {
		assert.True(t, categories.IsKnown(txn.Category), "unknown category %q", txn.Category)
		assert.NoError(t, txn.Validate())
	}

	budgets, _ := store.ListBudgets(ctx)
	assert.Len(t, budgets, len(seedBudgets))
}

func TestSeederSkipsPopulatedLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seeder := NewSeeder(store)

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	wallets, _ := store.ListWallets(ctx)
	assert.Len(t, wallets, 1)

	txns, _ := store.ListTransactions(ctx)
	assert.Len(t, txns, seedTransactions)
}

func TestManagerLoginSeedsAndLogoutResets(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	state := NewState()
	mgr := NewManager(NewDemoAuthenticator(0), state, store, NewSeeder(store))

	user, err := mgr.Login(ctx, "parth", "12345")
	require.NoError(t, err)
	assert.Equal(t, "parth", user.Username)
	assert.True(t, state.LoggedIn())

	wallets, _ := store.ListWallets(ctx)
	require.Len(t, wallets, 1)

	require.NoError(t, mgr.Logout(ctx))
	assert.False(t, state.LoggedIn())

	wallets, _ = store.ListWallets(ctx)
	assert.Empty(t, wallets)
	txns, _ := store.ListTransactions(ctx)
	assert.Empty(t, txns)
}

func TestManagerFailedLoginLeavesNoState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	state := NewState()
	mgr := NewManager(NewDemoAuthenticator(0), state, store, NewSeeder(store))

	_, err := mgr.Login(ctx, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCredentials))
	assert.False(t, state.LoggedIn())

	wallets, _ := store.ListWallets(ctx)
	assert.Empty(t, wallets)
}
