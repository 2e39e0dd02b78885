package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name       string
		build      func() *http.Request
		suspicious bool
	}{
		{
			name: "normal api request",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
				r.Header.Set("User-Agent", "curl/8.5.0")
				return r
			},
			suspicious: false,
		},
		{
			name: "path traversal",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/../etc/passwd", nil)
			},
			suspicious: true,
		},
		{
			name: "sql injection in query",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/transactions?walletId=1%20union%20select", nil)
			},
			suspicious: true,
		},
		{
			name: "scanner user agent",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
				r.Header.Set("User-Agent", "sqlmap/1.7")
				return r
			},
			suspicious: true,
		},
		{
			name: "unusual method",
			build: func() *http.Request {
				return httptest.NewRequest("TRACE", "/api/wallets", nil)
			},
			suspicious: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.suspicious, d.DetectSuspiciousRequest(tt.build()))
		})
	}
}

func TestDetectSuspiciousRequestCountsMetrics(t *testing.T) {
	d := NewDetector()
	r := httptest.NewRequest(http.MethodGet, "/wp-admin", nil)

	d.DetectSuspiciousRequest(r)
	d.DetectSuspiciousRequest(r)

	assert.Equal(t, int64(2), d.GetMetrics().SuspiciousRequests)
}

func TestExtractClientIPDirect(t *testing.T) {
	d := NewDetector()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:54321"

	assert.Equal(t, "203.0.113.9", d.ExtractClientIP(r))
}

func TestExtractClientIPHonorsForwardedFromTrustedProxy(t *testing.T) {
	d := NewDetector()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")

	assert.Equal(t, "203.0.113.9", d.ExtractClientIP(r))
}

func TestExtractClientIPIgnoresForwardedFromUntrustedPeer(t *testing.T) {
	d := NewDetector()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.4:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "198.51.100.4", d.ExtractClientIP(r))
}

func TestHeadersMiddleware(t *testing.T) {
	mw := NewHeadersMiddleware(DefaultHeadersConfig())
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallets", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")
}
