// Package retry re-runs outbound calls that failed transiently, waiting an
// exponentially growing, jittered delay between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"spectrum-feed/internal/observability/logging"
)

// Config controls WithBackoff.
type Config struct {
	MaxAttempts  int           // total calls including the first
	InitialDelay time.Duration // wait before the second call
	MaxDelay     time.Duration // cap on any single wait
	Multiplier   float64
	// JitterFraction adds up to this fraction of the delay at random (0..1).
	JitterFraction float64
}

// DefaultConfig is a general-purpose policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// NewsAPIConfig keeps the total wait short because a feed request is blocked on it.
func NewsAPIConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   250 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// FeedFetchConfig is used for publisher RSS feeds.
func FeedFetchConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       4 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
}

// ArticleFetchConfig is used for article pages. One retry only; the reader is waiting.
func ArticleFetchConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// HTTPError is a non-2xx response from an upstream.
type HTTPError struct {
	StatusCode int
	Message    string
	// RetryAfter is the server-requested wait, if it sent one.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ParseRetryAfter reads a Retry-After header given in seconds.
// HTTP-date values and garbage yield 0.
func ParseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error,
// or cfg.MaxAttempts calls have been made. A Retry-After carried by an
// HTTPError lengthens the next wait, still capped at cfg.MaxDelay.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	logger := logging.FromContext(ctx)
	attempts := max(cfg.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return fmt.Errorf("retry aborted: %w: %w", err, lastErr)
			}
			return fmt.Errorf("retry aborted: %w", err)
		}

		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		wait := delayFor(cfg, attempt, lastErr)
		logger.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", lastErr))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w: %w", ctx.Err(), lastErr)
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, lastErr)
}

// delayFor returns the wait after the given failed attempt (1-based).
func delayFor(cfg Config, attempt int, err error) time.Duration {
	d := float64(cfg.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= cfg.Multiplier
	}
	wait := time.Duration(d)
	if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
		wait = cfg.MaxDelay
	}
	wait = addJitter(wait, cfg.JitterFraction)

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > wait {
		wait = httpErr.RetryAfter
	}
	if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
		wait = cfg.MaxDelay
	}
	return wait
}

// IsRetryable reports whether err looks transient: network timeouts,
// refused or reset connections, and 408/429/5xx responses.
// Context cancellation is never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600,
			httpErr.StatusCode == http.StatusTooManyRequests,
			httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}
	return false
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need crypto randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
