package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tripFast opens after two consecutive failures.
func tripFast() Config {
	cfg := DBConfig()
	cfg.MinRequests = 2
	cfg.Timeout = time.Minute
	return cfg
}

func newMockBreaker(t *testing.T, cfg Config) (*DBCircuitBreaker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBCircuitBreakerWithConfig(db, cfg), mock
}

func TestDBCircuitBreaker_QueryContext(t *testing.T) {
	b, mock := newMockBreaker(t, DBConfig())
	mock.ExpectQuery("SELECT emoji, COUNT").
		WithArgs("https://example.com/a").
		WillReturnRows(sqlmock.NewRows([]string{"emoji", "cnt"}).AddRow("👍", 3))

	rows, err := b.QueryContext(context.Background(),
		"SELECT emoji, COUNT(*) FROM reactions WHERE article_id = $1 GROUP BY emoji", "https://example.com/a")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var emoji string
	var n int
	require.NoError(t, rows.Scan(&emoji, &n))
	assert.Equal(t, "👍", emoji)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreaker_ExecContext(t *testing.T) {
	b, mock := newMockBreaker(t, DBConfig())
	mock.ExpectExec("DELETE FROM reactions").WillReturnResult(sqlmock.NewResult(0, 2))

	res, err := b.ExecContext(context.Background(), "DELETE FROM reactions WHERE user_id = $1", "u1")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDBCircuitBreaker_QueryRowScan(t *testing.T) {
	b, mock := newMockBreaker(t, DBConfig())
	mock.ExpectQuery("SELECT emoji FROM reactions").
		WithArgs("u1", "a1").
		WillReturnRows(sqlmock.NewRows([]string{"emoji"}).AddRow("🔥"))

	var emoji string
	err := b.QueryRowScan(context.Background(),
		"SELECT emoji FROM reactions WHERE user_id = $1 AND article_id = $2", []any{"u1", "a1"}, &emoji)
	require.NoError(t, err)
	assert.Equal(t, "🔥", emoji)
}

func TestDBCircuitBreaker_NoRowsDoesNotTrip(t *testing.T) {
	b, mock := newMockBreaker(t, tripFast())
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT emoji").WillReturnRows(sqlmock.NewRows([]string{"emoji"}))
	}

	for i := 0; i < 3; i++ {
		var emoji string
		err := b.QueryRowScan(context.Background(), "SELECT emoji FROM reactions", nil, &emoji)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestDBCircuitBreaker_CanceledContextDoesNotTrip(t *testing.T) {
	b, mock := newMockBreaker(t, tripFast())
	for i := 0; i < 3; i++ {
		mock.ExpectExec("UPDATE").WillReturnError(context.Canceled)
	}

	for i := 0; i < 3; i++ {
		_, err := b.ExecContext(context.Background(), "UPDATE reactions SET emoji = $1", "👍")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.False(t, b.IsOpen())
}

func TestDBCircuitBreaker_OpensAfterFailures(t *testing.T) {
	b, mock := newMockBreaker(t, tripFast())
	dbDown := errors.New("connection refused")
	mock.ExpectQuery("SELECT 1").WillReturnError(dbDown)
	mock.ExpectQuery("SELECT 1").WillReturnError(dbDown)

	for i := 0; i < 2; i++ {
		_, err := b.QueryContext(context.Background(), "SELECT 1")
		assert.ErrorIs(t, err, dbDown)
	}
	require.True(t, b.IsOpen())

	// 開いている間は DB に到達しない
	_, err := b.QueryContext(context.Background(), "SELECT 1")
	assert.True(t, IsOpenError(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
