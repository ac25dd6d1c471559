package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"spectrum-feed/internal/handler/http/respond"
	"spectrum-feed/internal/observability/metrics"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-IP token bucket limiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained refill rate of each bucket.
	RequestsPerSecond float64
	// Burst is the bucket capacity.
	Burst int
	// IdleTTL is how long an untouched bucket is kept before cleanup.
	IdleTTL time.Duration
	// Enabled turns the limiter into a pass-through when false.
	Enabled bool
}

// DefaultRateLimitConfig allows 10 req/s with bursts of 20 per client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		IdleTTL:           10 * time.Minute,
		Enabled:           true,
	}
}

// Validate checks the limiter settings.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerSecond <= 0 || math.IsInf(c.RequestsPerSecond, 0) || math.IsNaN(c.RequestsPerSecond) {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("idle TTL must be positive, got %v", c.IdleTTL)
	}
	return nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	config    RateLimitConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewIPRateLimiter returns a limiter keyed by extractor. A nil extractor uses RemoteAddr.
func NewIPRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		config:    cfg,
		extractor: extractor,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

// Allow consumes one token from ip's bucket.
func (l *IPRateLimiter) Allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.visitors[ip] = v
		metrics.RateLimitTrackedClients.Set(float64(len(l.visitors)))
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if !l.config.Enabled {
		return next
	}
	retryAfter := strconv.Itoa(int(math.Ceil(1 / l.config.RequestsPerSecond)))
	limit := strconv.Itoa(l.config.Burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			// IP が取れない場合は制限しない
			slog.Warn("rate limiter could not extract client IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", limit)
		if !l.Allow(ip) {
			metrics.RecordRateLimitDecision(false)
			w.Header().Set("Retry-After", retryAfter)
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		metrics.RecordRateLimitDecision(true)
		next.ServeHTTP(w, r)
	})
}

// Cleanup drops buckets idle for longer than IdleTTL and returns how many were removed.
func (l *IPRateLimiter) Cleanup() int {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	metrics.RateLimitTrackedClients.Set(float64(len(l.visitors)))
	return removed
}

// Len returns the number of tracked client IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RunCleanup calls Cleanup every interval until ctx is cancelled.
func (l *IPRateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Cleanup(); n > 0 {
				slog.Debug("rate limiter cleanup completed", slog.Int("removed", n))
			}
		}
	}
}
