// Package http exposes the ledger over a JSON API: auth, wallets,
// transactions, budgets, aggregated stats, and CSV export.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Parthg59/expense-tracker/internal/cache"
	"github.com/Parthg59/expense-tracker/internal/ledger"
	applog "github.com/Parthg59/expense-tracker/internal/log"
	"github.com/Parthg59/expense-tracker/internal/middleware/ratelimit"
	"github.com/Parthg59/expense-tracker/internal/middleware/security"
	"github.com/Parthg59/expense-tracker/internal/middleware/trace"
	"github.com/Parthg59/expense-tracker/internal/services"
	"github.com/Parthg59/expense-tracker/internal/session"
)

// Options tunes server behavior beyond its collaborators.
type Options struct {
	TrendMonths   int
	StatsCacheTTL time.Duration
}

type Server struct {
	http.Server

	store    ledger.Store
	svc      *services.LedgerService
	sessions *session.Manager

	trendMonths int

	// statsCache fronts the three stats endpoints; any ledger write or
	// logout clears it wholesale.
	statsCache *cache.LRUCache[statsEnvelope]
	cacheMgr   *cache.Manager

	detector     *security.Detector
	traceMW      *trace.Middleware
	loginLimiter *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store ledger.Store, svc *services.LedgerService, sessions *session.Manager, opts Options) *Server {
	if opts.TrendMonths <= 0 {
		opts.TrendMonths = 6
	}
	if opts.StatsCacheTTL <= 0 {
		opts.StatsCacheTTL = 30 * time.Second
	}

	detector := security.NewDetector()

	s := &Server{
		store:        store,
		svc:          svc,
		sessions:     sessions,
		trendMonths:  opts.TrendMonths,
		statsCache:   cache.NewLRUCache[statsEnvelope](100, opts.StatsCacheTTL),
		cacheMgr:     cache.NewManager(),
		detector:     detector,
		traceMW:      trace.NewMiddleware(detector.ExtractClientIP),
		loginLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	s.cacheMgr.Register(s.statsCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	limitLogin := s.loginLimiter.Middleware(detector.ExtractClientIP, nil)
	mux.Handle("POST /api/auth/login", limitLogin(http.HandlerFunc(s.handleLogin)))
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux.HandleFunc("GET /api/wallets", s.handleListWallets)
	mux.HandleFunc("POST /api/wallets", s.handleCreateWallet)
	mux.HandleFunc("PUT /api/wallets/current", s.handleSetCurrentWallet)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleReplaceTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleRemoveTransaction)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("DELETE /api/budgets/{category}", s.handleRemoveBudget)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/stats/categories", s.handleCategoryBreakdown)
	mux.HandleFunc("GET /api/stats/trend", s.handleTrend)

	mux.HandleFunc("GET /api/export", s.handleExport)

	// Request chain: security headers, trace logging with request IDs,
	// then a per-request logger carrying the request ID for handlers.
	httpLogger := applog.New(applog.Config{Component: applog.ComponentHTTP})
	logMW := applog.Middleware(httpLogger)
	ridMW := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	// Suspicious requests are logged and counted but never blocked.
	suspect := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if detector.DetectSuspiciousRequest(r) {
				applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
					"path", r.URL.Path,
					"user_agent", r.UserAgent(),
					"client_ip", detector.ExtractClientIP(r))
			}
			next.ServeHTTP(w, r)
		})
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := headers.Middleware(s.traceMW.Middleware(logMW(ridMW(suspect(mux)))))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.loginLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListWallets(r.Context()); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics reports plain-text counters for scraping.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	tm := s.traceMW.GetMetrics()
	rm := s.loginLimiter.GetMetrics()
	sm := s.detector.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "http_requests_total %d\n", tm.TotalRequests)
	fmt.Fprintf(w, "http_response_time_us %d\n", tm.AverageResponseTime)
	fmt.Fprintf(w, "login_ratelimit_hits_total %d\n", rm.TotalHits)
	fmt.Fprintf(w, "login_ratelimit_clients %d\n", rm.ClientCount)
	fmt.Fprintf(w, "suspicious_requests_total %d\n", sm.SuspiciousRequests)
	fmt.Fprintf(w, "stats_cache_entries %d\n", s.statsCache.Size())
}
