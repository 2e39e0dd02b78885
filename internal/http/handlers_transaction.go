package http

import (
	"net/http"

	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/core"
	applog "github.com/Parthg59/expense-tracker/internal/log"
)

type transactionResponse struct {
	ID            string `json:"id"`
	WalletID      string `json:"walletId"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Label         string `json:"label"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	Date          string `json:"date"`
	IsRecurring   bool   `json:"isRecurring"`
	Recurrence    string `json:"recurrence,omitempty"`
}

type transactionRequest struct {
	WalletID      string `json:"walletId"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Label         string `json:"label"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"paymentMethod"`
	Date          string `json:"date"`
	IsRecurring   bool   `json:"isRecurring"`
	Recurrence    string `json:"recurrence"`
}

func transactionToResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		WalletID:      t.WalletID,
		Amount:        t.Amount.Decimal(),
		Category:      t.Category,
		CategoryLabel: categories.Lookup(t.Category).Label,
		Label:         t.Label,
		Notes:         t.Notes,
		PaymentMethod: string(t.PaymentMethod),
		Date:          t.Date.Format("2006-01-02"),
		IsRecurring:   t.IsRecurring,
		Recurrence:    string(t.Recurrence),
	}
}

func (s *Server) transactionFromRequest(w http.ResponseWriter, req transactionRequest) (core.Transaction, bool) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return core.Transaction{}, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return core.Transaction{}, false
	}

	return core.Transaction{
		WalletID:      req.WalletID,
		Amount:        core.Money{Cents: cents},
		Category:      sanitizeInput(req.Category),
		Label:         sanitizeInput(req.Label),
		Notes:         sanitizeInput(req.Notes),
		PaymentMethod: core.PaymentMethod(req.PaymentMethod),
		Date:          date,
		IsRecurring:   req.IsRecurring,
		Recurrence:    core.RecurrenceType(req.Recurrence),
	}, true
}

// handleListTransactions returns every transaction; a walletId query
// parameter narrows the list to one wallet.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	txns, err := s.store.ListTransactions(r.Context())
	if err != nil {
		applog.LogError(r.Context(), "List transactions failed", err, applog.OpList, applog.NewFields())
		writeDomainError(w, err)
		return
	}

	walletID := r.URL.Query().Get("walletId")
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		if walletID != "" && t.WalletID != walletID {
			continue
		}
		out = append(out, transactionToResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, ok := s.transactionFromRequest(w, req)
	if !ok {
		return
	}

	created, err := s.svc.CreateTransaction(r.Context(), t)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	fields := applog.NewFields().
		WithOperation(applog.OpCreate).
		WithTransaction(created.ID, created.WalletID, created.Category, created.Amount.Cents)
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Transaction recorded", fields.ToSlice()...)

	s.invalidateStats()
	writeJSON(w, http.StatusCreated, transactionToResponse(created))
}

func (s *Server) handleReplaceTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	id := r.PathValue("id")

	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, ok := s.transactionFromRequest(w, req)
	if !ok {
		return
	}

	replaced, err := s.svc.ReplaceTransaction(r.Context(), id, t)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusOK, transactionToResponse(replaced))
}

func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	id := r.PathValue("id")
	if err := s.svc.RemoveTransaction(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
