package ratelimit

import (
	"energy-es/internal/application/dto"
	"energy-es/internal/infrastructure/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func byRemoteAddr(r *http.Request) string { return r.RemoteAddr }

func doRequest(h http.Handler, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitMiddleware_Limits(t *testing.T) {
	clock := newFakeClock()
	rlm := newRateLimitMiddleware(config.RateLimitConfig{Enabled: true, Capacity: 2, RefillRate: 1}, byRemoteAddr, clock.Now)
	h := rlm.Handler(okHandler())

	rr := doRequest(h, "/api/v1/prices/spot", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))

	rr = doRequest(h, "/api/v1/prices/spot", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(h, "/api/v1/prices/spot", "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Error)
	assert.Equal(t, "429", body.Code)

	// Otro cliente tiene su propio bucket
	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/prices/spot", "10.0.0.2").Code)

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/prices/spot", "10.0.0.1").Code)
}

func TestRateLimitMiddleware_SkipPaths(t *testing.T) {
	rlm := newRateLimitMiddleware(config.RateLimitConfig{Enabled: true, Capacity: 1, RefillRate: 1}, byRemoteAddr, newFakeClock().Now)
	h := rlm.Handler(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "/health", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, doRequest(h, "/metrics", "10.0.0.1").Code)
	}
	assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/prices", "10.0.0.1").Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	rlm := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: false}, nil)
	h := rlm.Handler(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "/api/v1/prices", "10.0.0.1").Code)
	}
	assert.Equal(t, map[string]interface{}{"enabled": false}, rlm.Stats())
}

func TestRateLimitMiddleware_Stats(t *testing.T) {
	rlm := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: true, Capacity: 10, RefillRate: 2}, byRemoteAddr)
	doRequest(rlm.Handler(okHandler()), "/api/v1/prices", "10.0.0.1")

	stats := rlm.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 1, stats["total_clients"])
	assert.Equal(t, 10, stats["capacity"])
	assert.Equal(t, 2, stats["refill_rate"])
}
