package http

import (
	"net/http"

	"github.com/Parthg59/expense-tracker/internal/budget"
	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/core"
	applog "github.com/Parthg59/expense-tracker/internal/log"
	"github.com/Parthg59/expense-tracker/internal/stats"
)

type budgetResponse struct {
	WalletID          string  `json:"walletId"`
	Category          string  `json:"category"`
	CategoryLabel     string  `json:"categoryLabel"`
	Limit             string  `json:"limit"`
	Spent             string  `json:"spent"`
	Percentage        float64 `json:"percentage"`
	DisplayPercentage float64 `json:"displayPercentage"`
	IsOverBudget      bool    `json:"isOverBudget"`
}

type createBudgetRequest struct {
	WalletID string `json:"walletId"`
	Category string `json:"category"`
	Limit    string `json:"limit"`
}

// handleListBudgets returns the budgets of the current wallet together
// with their spending status for the current month.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	currentID, err := s.store.CurrentWallet(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	budgets, err := s.store.ListBudgets(r.Context())
	if err != nil {
		applog.LogError(r.Context(), "List budgets failed", err, applog.OpList, applog.NewFields().WithWallet(currentID))
		writeDomainError(w, err)
		return
	}
	txns, err := s.store.ListTransactions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	spending := stats.CategorySpending(stats.FilterByWallet(txns, currentID))

	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		if b.WalletID != currentID {
			continue
		}
		status := budget.Evaluate(b, spending)
		out = append(out, budgetResponse{
			WalletID:          b.WalletID,
			Category:          b.Category,
			CategoryLabel:     categories.Lookup(b.Category).Label,
			Limit:             b.Limit.Decimal(),
			Spent:             status.Spent.Decimal(),
			Percentage:        status.Percentage,
			DisplayPercentage: status.DisplayPercentage,
			IsOverBudget:      status.IsOverBudget,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	var req createBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	walletID := req.WalletID
	if walletID == "" {
		current, err := s.store.CurrentWallet(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		walletID = current
	}

	cents, err := core.ParseDecimalToCents(req.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	b := core.Budget{
		WalletID: walletID,
		Category: sanitizeInput(req.Category),
		Limit:    core.Money{Cents: cents},
	}

	if err := s.svc.CreateBudget(r.Context(), b); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusCreated, map[string]string{
		"walletId": b.WalletID,
		"category": b.Category,
		"limit":    b.Limit.Decimal(),
	})
}

func (s *Server) handleRemoveBudget(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	category := r.PathValue("category")
	currentID, err := s.store.CurrentWallet(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.svc.RemoveBudget(r.Context(), currentID, category); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
