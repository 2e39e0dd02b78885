// Package stats computes derived spending views from a wallet's transaction
// snapshot. All functions are pure: they never mutate their inputs and are
// deterministic for a given "now".
package stats

import (
	"time"

	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/core"
)

// DefaultTrendMonths is the number of buckets in the monthly trend series.
const DefaultTrendMonths = 6

// ComputeStats summarizes spending for one wallet. The transaction slice
// must already be filtered to that wallet.
func ComputeStats(wallet core.Wallet, txns []core.Transaction, now time.Time) core.WalletStats {
	var total, thisMonth, lastMonth int64

	thisStart, thisEnd := monthBounds(now)
	lastStart, lastEnd := monthBounds(thisStart.AddDate(0, 0, -1))

	for _, t := range txns {
		total += t.Amount.Cents
		if within(t.Date.Time, thisStart, thisEnd) {
			thisMonth += t.Amount.Cents
		}
		if within(t.Date.Time, lastStart, lastEnd) {
			lastMonth += t.Amount.Cents
		}
	}

	// Guard the ratio: an empty last month is a neutral 0, never NaN/Inf.
	var change float64
	if lastMonth > 0 {
		change = (float64(thisMonth) - float64(lastMonth)) / float64(lastMonth) * 100
	}

	return core.WalletStats{
		TotalExpense:     core.Money{Cents: total},
		ThisMonth:        core.Money{Cents: thisMonth},
		LastMonth:        core.Money{Cents: lastMonth},
		Savings:          core.Money{Cents: wallet.InitialBalance.Cents - total},
		PercentChange:    change,
		DisplayedBalance: core.Money{Cents: wallet.Balance.Cents - total},
	}
}

// CategoryBreakdown groups the transactions by category code and joins each
// group with the registry's display metadata. Output follows first-seen
// grouping order.
func CategoryBreakdown(txns []core.Transaction) []core.CategorySlice {
	sums := make(map[string]int64)
	var order []string
	for _, t := range txns {
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}

	out := make([]core.CategorySlice, 0, len(order))
	for _, code := range order {
		details := categories.Lookup(code)
		out = append(out, core.CategorySlice{
			Category: code,
			Label:    details.Label,
			Color:    details.Color,
			Amount:   core.Money{Cents: sums[code]},
		})
	}
	return out
}

// MonthlyTrend returns exactly monthCount buckets, oldest first, ending at
// the month containing now. Each bucket's savings figure is
// InitialBalance/monthCount minus that month's expense: a flat per-bucket
// projection kept for compatibility with the original dashboard, not a
// running balance.
func MonthlyTrend(txns []core.Transaction, wallet core.Wallet, now time.Time, monthCount int) []core.TrendPoint {
	if monthCount <= 0 {
		monthCount = DefaultTrendMonths
	}

	points := make([]core.TrendPoint, 0, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		// Anchor to the first of the target month; AddDate on a day-31
		// anchor would overflow into the following month.
		ref := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())

		var expense int64
		for _, t := range txns {
			if sameMonth(t.Date.Time, ref) {
				expense += t.Amount.Cents
			}
		}

		points = append(points, core.TrendPoint{
			Year:    ref.Year(),
			Month:   int(ref.Month()),
			Label:   ref.Format("Jan"),
			Expense: core.Money{Cents: expense},
			Savings: core.Money{Cents: wallet.InitialBalance.Cents/int64(monthCount) - expense},
		})
	}
	return points
}

// CategorySpending sums amounts per category code without registry joins.
// The budget evaluator consumes this map.
func CategorySpending(txns []core.Transaction) map[string]core.Money {
	sums := make(map[string]core.Money)
	for _, t := range txns {
		m := sums[t.Category]
		m.Cents += t.Amount.Cents
		sums[t.Category] = m
	}
	return sums
}

// FilterByWallet returns the transactions belonging to walletID, preserving
// input order.
func FilterByWallet(txns []core.Transaction, walletID string) []core.Transaction {
	out := make([]core.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.WalletID == walletID {
			out = append(out, t)
		}
	}
	return out
}

// monthBounds returns the inclusive [start, end] instants of ref's calendar
// month.
func monthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
