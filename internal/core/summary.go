package core

// WalletStats is the derived spending summary for one wallet.
type WalletStats struct {
	TotalExpense Money
	ThisMonth    Money
	LastMonth    Money
	// Savings is InitialBalance minus TotalExpense.
	Savings Money
	// PercentChange compares this month's spend to last month's. It is 0
	// when last month has no spend, never NaN or Inf.
	PercentChange float64
	// DisplayedBalance is Wallet.Balance minus TotalExpense, computed at
	// read time. The stored balance is never mutated by writes.
	DisplayedBalance Money
}

// CategorySlice is a per-category spending total joined with the registry's
// display metadata.
type CategorySlice struct {
	Category string
	Label    string
	Color    string
	Amount   Money
}

// TrendPoint is one calendar-month bucket of the monthly trend series.
type TrendPoint struct {
	Year    int
	Month   int // 1-12
	Label   string
	Expense Money
	Savings Money
}

// BudgetStatus is the evaluated state of one budget against current spending.
type BudgetStatus struct {
	Budget Budget
	Spent  Money
	// Percentage is the raw spend-vs-limit ratio and may exceed 100.
	Percentage float64
	// DisplayPercentage is clamped to 100 for progress bar rendering.
	DisplayPercentage float64
	IsOverBudget      bool
}
