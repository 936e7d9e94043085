package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter provides per-IP rate limiting using a token bucket algorithm.
// The demo endpoints burn real model tokens, so abuse has a dollar cost;
// requests are weighted so the expensive endpoints drain a bucket faster
// than cheap reads do.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   int     // max tokens
}

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// Request weights by what a call actually costs us. A model completion is a
// metered API call; an outbound phone demo dials a real number.
const (
	costDefault    = 1
	costCompletion = 2
	costPhoneCall  = 5
)

var endpointCost = map[string]float64{
	"/api/chat":            costCompletion,
	"/api/adcopy":          costCompletion,
	"/api/webchat/message": costCompletion,
	"/api/call":            costPhoneCall,
}

// NewRateLimiter creates a rate limiter allowing rate requests/sec with the
// given burst size per IP.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
	}
	// Periodically evict stale entries to prevent memory growth.
	go rl.cleanup()
	return rl
}

// Allow returns true if a unit-cost request from ip is within the rate limit.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.AllowN(ip, costDefault)
}

// AllowN returns true if a request of the given cost from ip fits in the
// bucket, deducting the cost when it does.
func (rl *RateLimiter) AllowN(ip string, cost float64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: float64(rl.burst), lastTime: now}
		rl.buckets[ip] = b
	}

	elapsed := now.Sub(b.lastTime).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > float64(rl.burst) {
		b.tokens = float64(rl.burst)
	}
	b.lastTime = now

	if b.tokens < cost {
		return false
	}
	b.tokens -= cost
	return true
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, b := range rl.buckets {
			if b.lastTime.Before(cutoff) {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// configured rate with 429 Too Many Requests. Endpoint costs come from
// endpointCost; unknown paths count as one token.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			cost := endpointCost[r.URL.Path]
			if cost == 0 {
				cost = costDefault
			}
			if !limiter.AllowN(ip, cost) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
