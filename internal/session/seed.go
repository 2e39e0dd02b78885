package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Parthg59/expense-tracker/internal/core"
	"github.com/Parthg59/expense-tracker/internal/ledger"
)

const (
	seedWalletName    = "Personal Wallet"
	seedOpeningCents  = 500000 // 5000.00
	seedTransactions  = 45
	seedHistoryDays   = 60
	seedMaxAmountCent = 15000
	seedMinAmountCent = 200
)

var seedLabels = map[string][]string{
	"food-drinks":    {"Groceries", "Coffee", "Snacks", "Juice run"},
	"transportation": {"Fuel", "Bus pass", "Cab ride"},
	"shopping":       {"Clothes", "Electronics", "Household items"},
	"entertainment":  {"Movie night", "Concert tickets", "Game rental"},
	"utilities":      {"Electricity bill", "Internet bill", "Water bill"},
	"healthcare":     {"Pharmacy", "Doctor visit"},
	"dining":         {"Lunch out", "Dinner with friends"},
	"fitness":        {"Gym membership", "Yoga class"},
}

var seedBudgets = []struct {
	category string
	cents    int64
}{
	{"food-drinks", 50000},
	{"transportation", 20000},
	{"entertainment", 15000},
	{"shopping", 30000},
}

// Seeder populates an empty ledger with sample data so a fresh demo
// login lands on a populated dashboard.
type Seeder struct {
	store ledger.Store
	rng   *rand.Rand
	now   func() time.Time
}

func NewSeeder(store ledger.Store) *Seeder {
	return &Seeder{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// Seed creates one wallet, a spread of transactions over the recent
// past, and starter budgets. It is a no-op when the ledger already has
// a wallet, so repeated logins never duplicate the sample data.
func (s *Seeder) Seed(ctx context.Context) error {
	wallets, err := s.store.ListWallets(ctx)
	if err != nil {
		return fmt.Errorf("seed: list wallets: %w", err)
	}
	if len(wallets) > 0 {
		return nil
	}

	now := s.now().UTC()
	wallet := core.Wallet{
		ID:             uuid.NewString(),
		Name:           seedWalletName,
		Currency:       core.USD,
		Balance:        core.Money{Cents: seedOpeningCents},
		InitialBalance: core.Money{Cents: seedOpeningCents},
		CreatedAt:      core.Date{Time: now},
	}
	if err := s.store.AppendWallet(ctx, wallet); err != nil {
		return fmt.Errorf("seed: append wallet: %w", err)
	}

	methods := core.PaymentMethods()
	categories := make([]string, 0, len(seedLabels))
	for category := range seedLabels {
		categories = append(categories, category)
	}

	for i := 0; i < seedTransactions; i++ {
		category := categories[s.rng.Intn(len(categories))]
		labels := seedLabels[category]
		daysAgo := s.rng.Intn(seedHistoryDays)
		t := core.Transaction{
			ID:            uuid.NewString(),
			WalletID:      wallet.ID,
			Amount:        core.Money{Cents: seedMinAmountCent + s.rng.Int63n(seedMaxAmountCent-seedMinAmountCent)},
			Category:      category,
			Label:         labels[s.rng.Intn(len(labels))],
			PaymentMethod: methods[s.rng.Intn(len(methods))],
			Date:          core.Date{Time: now.AddDate(0, 0, -daysAgo)},
		}
		if err := s.store.AppendTransaction(ctx, t); err != nil {
			return fmt.Errorf("seed: append transaction: %w", err)
		}
	}

	for _, b := range seedBudgets {
		budget := core.Budget{
			WalletID: wallet.ID,
			Category: b.category,
			Limit:    core.Money{Cents: b.cents},
		}
		if err := s.store.AppendBudget(ctx, budget); err != nil {
			return fmt.Errorf("seed: append budget: %w", err)
		}
	}

	return nil
}
