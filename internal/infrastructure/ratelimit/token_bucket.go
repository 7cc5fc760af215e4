package ratelimit

import (
	"sync"
	"time"
)

// Clock permite controlar el tiempo en los tests
type Clock func() time.Time

// TokenBucket es un token bucket con recarga continua
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens por segundo
	lastRefill time.Time
	lastSeen   time.Time
	now        Clock
}

// NewTokenBucket crea un bucket lleno con la capacidad y la recarga por segundo indicadas
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity, refillRate int, now Clock) *TokenBucket {
	t := now()
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(refillRate),
		lastRefill: t,
		lastSeen:   t,
		now:        now,
	}
}

// Allow consume un token si hay alguno disponible
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	tb.lastSeen = tb.lastRefill
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Tokens retorna los tokens enteros disponibles
func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return int(tb.tokens)
}

// RetryAfter retorna cuánto falta para el siguiente token
func (tb *TokenBucket) RetryAfter() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
}

// idleSince indica si el bucket está lleno y sin uso desde cutoff
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens >= tb.capacity && tb.lastSeen.Before(cutoff)
}

// refill debe llamarse con el lock tomado
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	if elapsed <= 0 {
		return
	}

	tb.tokens += elapsed.Seconds() * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

// RateLimiterCollection mantiene un bucket por cliente
type RateLimiterCollection struct {
	mu              sync.Mutex
	buckets         map[string]*TokenBucket
	capacity        int
	refillRate      int
	now             Clock
	lastCleanup     time.Time
	cleanupInterval time.Duration
	idleTTL         time.Duration
}

// NewRateLimiterCollection crea una colección vacía de buckets
func NewRateLimiterCollection(capacity, refillRate int) *RateLimiterCollection {
	return newRateLimiterCollection(capacity, refillRate, time.Now)
}

func newRateLimiterCollection(capacity, refillRate int, now Clock) *RateLimiterCollection {
	return &RateLimiterCollection{
		buckets:         make(map[string]*TokenBucket),
		capacity:        capacity,
		refillRate:      refillRate,
		now:             now,
		lastCleanup:     now(),
		cleanupInterval: 10 * time.Minute,
		idleTTL:         30 * time.Minute,
	}
}

// Allow consume un token del bucket del cliente
func (rlc *RateLimiterCollection) Allow(clientID string) bool {
	return rlc.getBucket(clientID).Allow()
}

// Tokens retorna los tokens disponibles del cliente
func (rlc *RateLimiterCollection) Tokens(clientID string) int {
	return rlc.getBucket(clientID).Tokens()
}

// RetryAfter retorna la espera sugerida para el cliente
func (rlc *RateLimiterCollection) RetryAfter(clientID string) time.Duration {
	return rlc.getBucket(clientID).RetryAfter()
}

// Clients retorna el número de clientes con bucket
func (rlc *RateLimiterCollection) Clients() int {
	rlc.mu.Lock()
	defer rlc.mu.Unlock()
	return len(rlc.buckets)
}

func (rlc *RateLimiterCollection) getBucket(clientID string) *TokenBucket {
	rlc.mu.Lock()
	defer rlc.mu.Unlock()

	rlc.maybeCleanup()

	bucket, ok := rlc.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(rlc.capacity, rlc.refillRate, rlc.now)
		rlc.buckets[clientID] = bucket
	}
	return bucket
}

// maybeCleanup elimina los buckets llenos que llevan idleTTL sin uso. Requiere el lock.
func (rlc *RateLimiterCollection) maybeCleanup() {
	now := rlc.now()
	if now.Sub(rlc.lastCleanup) < rlc.cleanupInterval {
		return
	}

	cutoff := now.Add(-rlc.idleTTL)
	for clientID, bucket := range rlc.buckets {
		if bucket.idleSince(cutoff) {
			delete(rlc.buckets, clientID)
		}
	}
	rlc.lastCleanup = now
}
