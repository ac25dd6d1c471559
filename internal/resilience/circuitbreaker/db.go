package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker guards a *sql.DB. Once the database keeps failing, calls
// return gobreaker.ErrOpenState without touching the connection pool.
//
// sql.ErrNoRows and a cancelled caller context are passed through but do not
// count as database failures.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens the circuit after five consecutive failures and probes again after 30s.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful:     dbCallSucceeded,
	}
}

func dbCallSucceeded(err error) bool {
	return err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled)
}

// NewDBCircuitBreaker wraps db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db with cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// guard runs fn through the breaker and restores its typed result.
func guard[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Run(func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

// QueryContext runs a query through the breaker.
func (b *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := guard(b.cb, func() (*sql.Rows, error) {
		return b.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecContext runs a statement through the breaker.
func (b *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guard(b.cb, func() (sql.Result, error) {
		return b.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowScan runs a single-row query and scans it into dest.
// The scan happens inside the breaker since *sql.Row defers its error to Scan.
// It returns sql.ErrNoRows when the query matched nothing.
func (b *DBCircuitBreaker) QueryRowScan(ctx context.Context, query string, args []any, dest ...any) error {
	return b.cb.Run(func() error {
		return b.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// State returns the breaker state.
func (b *DBCircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// IsOpen reports whether the breaker is open.
func (b *DBCircuitBreaker) IsOpen() bool {
	return b.cb.IsOpen()
}
