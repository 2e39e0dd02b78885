package http

import (
	"net/http"

	"github.com/Parthg59/expense-tracker/internal/core"
	applog "github.com/Parthg59/expense-tracker/internal/log"
)

type walletResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
	Balance        string `json:"balance"`
	InitialBalance string `json:"initialBalance"`
	CreatedAt      string `json:"createdAt"`
	IsCurrent      bool   `json:"isCurrent"`
}

type createWalletRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

type setCurrentWalletRequest struct {
	WalletID string `json:"walletId"`
}

func walletToResponse(w core.Wallet, currentID string) walletResponse {
	return walletResponse{
		ID:             w.ID,
		Name:           w.Name,
		Currency:       string(w.Currency),
		CurrencySymbol: w.Currency.Symbol(),
		Balance:        w.Balance.Decimal(),
		InitialBalance: w.InitialBalance.Decimal(),
		CreatedAt:      w.CreatedAt.Format("2006-01-02"),
		IsCurrent:      w.ID == currentID,
	}
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	wallets, err := s.store.ListWallets(r.Context())
	if err != nil {
		applog.LogError(r.Context(), "List wallets failed", err, applog.OpList, applog.NewFields())
		writeDomainError(w, err)
		return
	}
	currentID, err := s.store.CurrentWallet(r.Context())
	if err != nil {
		applog.LogError(r.Context(), "Current wallet lookup failed", err, applog.OpList, applog.NewFields())
		writeDomainError(w, err)
		return
	}

	out := make([]walletResponse, 0, len(wallets))
	for _, wallet := range wallets {
		out = append(out, walletToResponse(wallet, currentID))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	var req createWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cents, err := core.ParseDecimalToCents(req.Balance)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid balance")
		return
	}

	wallet, err := s.svc.CreateWallet(r.Context(), sanitizeInput(req.Name), core.Currency(req.Currency), core.Money{Cents: cents})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()

	currentID, _ := s.store.CurrentWallet(r.Context())
	writeJSON(w, http.StatusCreated, walletToResponse(wallet, currentID))
}

func (s *Server) handleSetCurrentWallet(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	var req setCurrentWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.store.SetCurrentWallet(r.Context(), req.WalletID); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusOK, map[string]string{"currentWalletId": req.WalletID})
}
