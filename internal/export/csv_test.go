package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parthg59/expense-tracker/internal/core"
)

func TestToDelimitedTextEmptyIsRejected(t *testing.T) {
	_, err := ToDelimitedText(nil)
	assert.ErrorIs(t, err, ErrNoTransactions)

	_, err = ToDelimitedText([]core.Transaction{})
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestToDelimitedText(t *testing.T) {
	txns := []core.Transaction{
		{
			ID:            "t1",
			WalletID:      "w1",
			Amount:        core.Money{Cents: 1250},
			Category:      "food-drinks",
			Label:         "Groceries",
			Notes:         "weekly run",
			PaymentMethod: core.CreditCard,
			Date:          core.NewDate(2025, 3, 14),
		},
		{
			ID:            "t2",
			WalletID:      "w1",
			Amount:        core.Money{Cents: 60000},
			Category:      "unknown-code",
			Label:         "Rent",
			PaymentMethod: core.UPI,
			Date:          core.NewDate(2025, 3, 1),
		},
	}

	out, err := ToDelimitedText(txns)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Category,Amount,Label,Payment Method,Notes", lines[0])
	assert.Equal(t, "2025-03-14T00:00:00Z,Food & Drinks,12.50,Groceries,Credit Card,weekly run", lines[1])
	// Unknown category codes render via the registry's default entry.
	assert.Equal(t, "2025-03-01T00:00:00Z,Food & Drinks,600.00,Rent,UPI,", lines[2])
}

func TestToDelimitedTextPreservesInputOrder(t *testing.T) {
	txns := []core.Transaction{
		{WalletID: "w1", Amount: core.Money{Cents: 300}, Category: "dining", Label: "b", PaymentMethod: core.Cash, Date: core.NewDate(2025, 6, 2)},
		{WalletID: "w1", Amount: core.Money{Cents: 100}, Category: "dining", Label: "a", PaymentMethod: core.Cash, Date: core.NewDate(2025, 1, 9)},
	}
	out, err := ToDelimitedText(txns)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], ",b,")
	assert.Contains(t, lines[2], ",a,")
}

func TestToDelimitedTextDoesNotEscapeCommas(t *testing.T) {
	// Known limitation carried over from the original exporter.
	txns := []core.Transaction{
		{WalletID: "w1", Amount: core.Money{Cents: 100}, Category: "dining", Label: "lunch, with team", PaymentMethod: core.Cash, Date: core.NewDate(2025, 6, 2)},
	}
	out, err := ToDelimitedText(txns)
	require.NoError(t, err)
	assert.Contains(t, out, "lunch, with team")
	assert.NotContains(t, out, `"lunch, with team"`)
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "transactions-2025-09-01.csv", Filename(now))
}
