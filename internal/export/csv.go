// Package export serializes a transaction snapshot into the download
// payload offered by the dashboard.
package export

import (
	"errors"
	"strings"
	"time"

	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/core"
)

// MIMEType is the content type of the export payload.
const MIMEType = "text/csv"

// ErrNoTransactions is returned for an empty snapshot. Callers surface a
// notice instead of producing a zero-row file.
var ErrNoTransactions = errors.New("no transactions to export")

var header = []string{"Date", "Category", "Amount", "Label", "Payment Method", "Notes"}

// ToDelimitedText renders the transactions as comma-delimited text in input
// order. Category codes are rendered through the registry label and amounts
// as raw decimals without a currency symbol.
//
// Fields are joined naively: embedded commas in labels or notes are not
// quoted or escaped. This matches the behavior of the original exporter and
// is a documented limitation, not a bug to fix silently.
func ToDelimitedText(txns []core.Transaction) (string, error) {
	if len(txns) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, t := range txns {
		row := []string{
			t.Date.Format(time.RFC3339),
			categories.Lookup(t.Category).Label,
			t.Amount.Decimal(),
			t.Label,
			string(t.PaymentMethod),
			t.Notes,
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}
	return b.String(), nil
}

// Filename returns the download name for an export taken at now, e.g.
// "transactions-2025-09-01.csv".
func Filename(now time.Time) string {
	return "transactions-" + now.Format("2006-01-02") + ".csv"
}
