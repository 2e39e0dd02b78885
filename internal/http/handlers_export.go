package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Parthg59/expense-tracker/internal/categories"
	"github.com/Parthg59/expense-tracker/internal/export"
	applog "github.com/Parthg59/expense-tracker/internal/log"
	"github.com/Parthg59/expense-tracker/internal/stats"
)

// handleExport streams the current wallet's transactions as a CSV
// attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	currentID, err := s.store.CurrentWallet(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	txns, err := s.store.ListTransactions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data, err := export.ToDelimitedText(stats.FilterByWallet(txns, currentID))
	if err != nil {
		if errors.Is(err, export.ErrNoTransactions) {
			writeError(w, http.StatusNotFound, "no transactions to export")
			return
		}
		applog.LogError(r.Context(), "CSV export failed", err, applog.OpExport, applog.NewFields().WithWallet(currentID))
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(data))
}

type categoryResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// handleListCategories returns the fixed category registry. It does not
// require a session: the registry is static reference data.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	all := categories.All()
	out := make([]categoryResponse, 0, len(all))
	for _, c := range all {
		out = append(out, categoryResponse{
			Code:  c.Code,
			Label: c.Label,
			Icon:  c.Icon,
			Color: c.Color,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
