package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestCurrencyValidate(t *testing.T) {
	for _, c := range Currencies() {
		if err := c.Validate(); err != nil {
			t.Fatalf("%s expected ok, got %v", c, err)
		}
	}
	if err := Currency("BTC").Validate(); err == nil {
		t.Fatalf("expected error for unsupported currency")
	}
}

func TestPaymentMethodValidate(t *testing.T) {
	for _, p := range PaymentMethods() {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s expected ok, got %v", p, err)
		}
	}
	if err := PaymentMethod("Barter").Validate(); err == nil {
		t.Fatalf("expected error for unknown payment method")
	}
}

func TestWalletValidate(t *testing.T) {
	good := Wallet{
		ID:             "w1",
		Name:           "Personal",
		Currency:       USD,
		Balance:        Money{Cents: 500000},
		InitialBalance: Money{Cents: 500000},
		CreatedAt:      NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Wallet{
		{Name: "n", Currency: USD, CreatedAt: NewDate(2025, 1, 1)},                 // no id
		{ID: "w", Currency: USD, CreatedAt: NewDate(2025, 1, 1)},                   // no name
		{ID: "w", Name: "n", Currency: "XX", CreatedAt: NewDate(2025, 1, 1)},       // bad currency
		{ID: "w", Name: "n", Currency: USD},                                       // zero creation date
	}
	for i, w := range bads {
		if err := w.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:            "t1",
		WalletID:      "w1",
		Amount:        Money{Cents: 1250},
		Category:      "food-drinks",
		Label:         "Groceries",
		PaymentMethod: Cash,
		Date:          NewDate(2025, 3, 14),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	recurring := good
	recurring.IsRecurring = true
	recurring.Recurrence = Monthly
	if err := recurring.Validate(); err != nil {
		t.Fatalf("recurring expected ok, got %v", err)
	}

	bads := []Transaction{
		{WalletID: "", Amount: Money{Cents: 1}, Category: "c", Label: "l", PaymentMethod: Cash, Date: NewDate(2025, 1, 1)},
		{WalletID: "w", Amount: Money{Cents: 0}, Category: "c", Label: "l", PaymentMethod: Cash, Date: NewDate(2025, 1, 1)},
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "", Label: "l", PaymentMethod: Cash, Date: NewDate(2025, 1, 1)},
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "c", Label: " ", PaymentMethod: Cash, Date: NewDate(2025, 1, 1)},
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "c", Label: "l", PaymentMethod: "Gold", Date: NewDate(2025, 1, 1)},
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "c", Label: "l", PaymentMethod: Cash},
		// recurring flag without a recurrence type
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "c", Label: "l", PaymentMethod: Cash, Date: NewDate(2025, 1, 1), IsRecurring: true},
		// recurrence type without the flag
		{WalletID: "w", Amount: Money{Cents: 1}, Category: "c", Label: "l", PaymentMethod: Cash, Date: NewDate(2025, 1, 1), Recurrence: Weekly},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{WalletID: "w", Category: "food-drinks", Limit: Money{Cents: 50000}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Budget{
		{Category: "c", Limit: Money{Cents: 1}},
		{WalletID: "w", Limit: Money{Cents: 1}},
		{WalletID: "w", Category: "c", Limit: Money{Cents: 0}},
		{WalletID: "w", Category: "c", Limit: Money{Cents: -100}},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
