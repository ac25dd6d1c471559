package newsapi

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all calls of one client.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows perMinute calls per minute with the given burst.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Wait blocks until a token is available or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
