package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"review-analyzer/internal/cache"
	"review-analyzer/internal/services/review"

	"github.com/rs/zerolog/log"
)

// Limiter decides whether a client may make another request.
type Limiter interface {
	Allow(ctx context.Context, clientIP string) bool
}

// RateLimit returns middleware that rejects clients over their budget with a
// 429 and a Retry-After hint.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if !limiter.Allow(r.Context(), clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("url", r.URL.String()).
					Msg("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := review.NewErrorResponse(review.ErrCodeRateLimit,
					"Rate limit exceeded. Please try again later.")
				if err := json.NewEncoder(w).Encode(resp); err != nil {
					http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the real client IP address.
func getClientIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		// First IP in the chain is the originating client.
		if i := strings.IndexByte(forwardedFor, ','); i > 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return forwardedFor
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// TokenBucketLimiter is a per-IP token bucket held in memory. It is the
// default when no Redis address is configured; budgets are then per instance.
type TokenBucketLimiter struct {
	requestsPerMinute int
	burstSize         int

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

func NewTokenBucketLimiter(requestsPerMinute, burstSize int) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		requestsPerMinute: requestsPerMinute,
		burstSize:         burstSize,
		clients:           make(map[string]*clientBucket),
	}
}

func (l *TokenBucketLimiter) Allow(_ context.Context, clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	bucket, ok := l.clients[clientIP]
	if !ok {
		bucket = &clientBucket{tokens: l.burstSize, lastRefill: now}
		l.clients[clientIP] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill)
	if refill := int(elapsed.Minutes() * float64(l.requestsPerMinute)); refill > 0 {
		bucket.tokens = min(bucket.tokens+refill, l.burstSize)
		bucket.lastRefill = now
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

// RedisLimiter counts requests per client in fixed one-minute windows shared
// across instances. Redis errors fail open: an unreachable Redis must not take
// the API down with it.
type RedisLimiter struct {
	cache             *cache.RedisCache
	requestsPerMinute int
}

func NewRedisLimiter(c *cache.RedisCache, requestsPerMinute int) *RedisLimiter {
	return &RedisLimiter{cache: c, requestsPerMinute: requestsPerMinute}
}

func (l *RedisLimiter) Allow(ctx context.Context, clientIP string) bool {
	window := time.Now().Unix() / int64(cache.RateLimitWindow.Seconds())
	key := cache.RateLimitKey(clientIP, window)

	// Two windows of TTL so a key never expires mid-window.
	n, err := l.cache.Incr(ctx, key, 2*cache.RateLimitWindow)
	if err != nil {
		log.Warn().Err(err).Msg("Rate limit check failed, allowing request")
		return true
	}
	return n <= int64(l.requestsPerMinute)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
