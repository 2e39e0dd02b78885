// Package budget evaluates monthly category budgets against current
// spending and owns the creation-time validation rules.
package budget

import (
	"github.com/Parthg59/expense-tracker/internal/core"
)

// Evaluate computes the spend-vs-limit status for one budget given the
// per-category spending map. A category absent from the map counts as zero
// spend. The caller guarantees Limit > 0 (enforced by ValidateNew at the
// write boundary), so no division guard is needed here.
func Evaluate(b core.Budget, spending map[string]core.Money) core.BudgetStatus {
	spent := spending[b.Category]
	percentage := float64(spent.Cents) / float64(b.Limit.Cents) * 100

	display := percentage
	if display > 100 {
		display = 100
	}

	return core.BudgetStatus{
		Budget:            b,
		Spent:             spent,
		Percentage:        percentage,
		DisplayPercentage: display,
		IsOverBudget:      spent.Cents > b.Limit.Cents,
	}
}

// EvaluateAll evaluates every budget in input order.
func EvaluateAll(budgets []core.Budget, spending map[string]core.Money) []core.BudgetStatus {
	out := make([]core.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, Evaluate(b, spending))
	}
	return out
}

// ValidateNew checks the creation rules for a budget: a positive limit and
// no existing budget for the same wallet+category pair. Duplicates are
// rejected, never silently overwritten.
func ValidateNew(b core.Budget, existing []core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, e := range existing {
		if e.WalletID == b.WalletID && e.Category == b.Category {
			return core.ErrDuplicateBudget
		}
	}
	return nil
}
