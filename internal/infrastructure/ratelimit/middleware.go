package ratelimit

import (
	"energy-es/internal/application/dto"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ClientIDFunc identifica al cliente de un request
type ClientIDFunc func(r *http.Request) string

// RateLimitMiddleware limita los requests por cliente con un token bucket
type RateLimitMiddleware struct {
	limiter   *RateLimiterCollection
	skipPaths map[string]bool
	enabled   bool
	clientID  ClientIDFunc
}

// NewRateLimitMiddleware crea el middleware a partir de la configuración
func NewRateLimitMiddleware(rateLimitConfig config.RateLimitConfig, clientID ClientIDFunc) *RateLimitMiddleware {
	return newRateLimitMiddleware(rateLimitConfig, clientID, time.Now)
}

func newRateLimitMiddleware(rateLimitConfig config.RateLimitConfig, clientID ClientIDFunc, now Clock) *RateLimitMiddleware {
	var limiter *RateLimiterCollection
	if rateLimitConfig.Enabled {
		limiter = newRateLimiterCollection(rateLimitConfig.Capacity, rateLimitConfig.RefillRate, now)
	}

	if clientID == nil {
		clientID = func(r *http.Request) string { return r.RemoteAddr }
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		// Las sondas y el scraping de métricas no consumen tokens
		skipPaths: map[string]bool{
			"/health":  true,
			"/ready":   true,
			"/metrics": true,
		},
		enabled:  rateLimitConfig.Enabled,
		clientID: clientID,
	}
}

// Handler retorna el middleware HTTP
func (rlm *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.enabled || rlm.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientID := rlm.clientID(r)

		allowed := rlm.limiter.Allow(clientID)
		remaining := rlm.limiter.Tokens(clientID)

		metrics.RecordRateLimitResult(allowed)
		metrics.UpdateRateLimitTokens(clientID, float64(remaining))

		if !allowed {
			logging.Security().RateLimitExceeded(ctx, clientID, r.URL.Path)
			rlm.writeRateLimitError(w, rlm.limiter.RetryAfter(clientID))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

// writeRateLimitError escribe la respuesta 429 con Retry-After en segundos enteros
func (rlm *RateLimitMiddleware) writeRateLimitError(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	body, _ := json.Marshal(dto.NewErrorResponse(
		"RATE_LIMIT_EXCEEDED",
		"Rate limit exceeded, retry in "+strconv.Itoa(seconds)+"s",
		http.StatusTooManyRequests,
	))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write(body)
}

// Stats retorna estadísticas del rate limiting
func (rlm *RateLimitMiddleware) Stats() map[string]interface{} {
	stats := map[string]interface{}{"enabled": rlm.enabled}
	if rlm.limiter != nil {
		stats["total_clients"] = rlm.limiter.Clients()
		stats["capacity"] = rlm.limiter.capacity
		stats["refill_rate"] = rlm.limiter.refillRate
	}
	return stats
}
