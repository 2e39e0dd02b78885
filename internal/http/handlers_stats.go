package http

import (
	"net/http"
	"time"

	"github.com/Parthg59/expense-tracker/internal/core"
	applog "github.com/Parthg59/expense-tracker/internal/log"
	"github.com/Parthg59/expense-tracker/internal/stats"
)

type statsResponse struct {
	WalletID         string  `json:"walletId"`
	TotalExpense     string  `json:"totalExpense"`
	ThisMonth        string  `json:"thisMonth"`
	LastMonth        string  `json:"lastMonth"`
	Savings          string  `json:"savings"`
	PercentChange    float64 `json:"percentChange"`
	DisplayedBalance string  `json:"displayedBalance"`
}

type categorySliceResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Amount   string `json:"amount"`
}

type trendPointResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Expense string `json:"expense"`
	Savings string `json:"savings"`
}

// statsEnvelope is the cached payload shared by the three stats
// endpoints. It is computed once per wallet snapshot and sliced per
// endpoint on the way out.
type statsEnvelope struct {
	Stats      statsResponse
	Categories []categorySliceResponse
	Trend      []trendPointResponse
}

// computeStats builds the cached stats envelope for the current wallet.
func (s *Server) computeStats(r *http.Request) (statsEnvelope, error) {
	const cacheKey = "current"
	if env, found := s.statsCache.Get(cacheKey); found {
		return env, nil
	}

	ctx := r.Context()
	currentID, err := s.store.CurrentWallet(ctx)
	if err != nil {
		return statsEnvelope{}, err
	}

	wallets, err := s.store.ListWallets(ctx)
	if err != nil {
		return statsEnvelope{}, err
	}
	var wallet core.Wallet
	found := false
	for _, w := range wallets {
		if w.ID == currentID {
			wallet = w
			found = true
			break
		}
	}
	if !found {
		return statsEnvelope{}, core.ErrWalletNotFound
	}

	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		return statsEnvelope{}, err
	}
	walletTxns := stats.FilterByWallet(txns, wallet.ID)

	now := time.Now()
	summary := stats.ComputeStats(wallet, walletTxns, now)
	breakdown := stats.CategoryBreakdown(walletTxns)
	trend := stats.MonthlyTrend(walletTxns, wallet, now, s.trendMonths)

	env := statsEnvelope{
		Stats: statsResponse{
			WalletID:         wallet.ID,
			TotalExpense:     summary.TotalExpense.Decimal(),
			ThisMonth:        summary.ThisMonth.Decimal(),
			LastMonth:        summary.LastMonth.Decimal(),
			Savings:          summary.Savings.Decimal(),
			PercentChange:    summary.PercentChange,
			DisplayedBalance: summary.DisplayedBalance.Decimal(),
		},
	}
	for _, slice := range breakdown {
		env.Categories = append(env.Categories, categorySliceResponse{
			Category: slice.Category,
			Label:    slice.Label,
			Color:    slice.Color,
			Amount:   slice.Amount.Decimal(),
		})
	}
	for _, point := range trend {
		env.Trend = append(env.Trend, trendPointResponse{
			Year:    point.Year,
			Month:   point.Month,
			Label:   point.Label,
			Expense: point.Expense.Decimal(),
			Savings: point.Savings.Decimal(),
		})
	}

	s.statsCache.Set(cacheKey, env)
	return env, nil
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	env, err := s.computeStats(r)
	if err != nil {
		applog.LogError(r.Context(), "Stats computation failed", err, applog.OpStats, applog.NewFields())
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env.Stats)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	env, err := s.computeStats(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if env.Categories == nil {
		env.Categories = []categorySliceResponse{}
	}
	writeJSON(w, http.StatusOK, env.Categories)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	env, err := s.computeStats(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env.Trend)
}
