package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pkgconfig "spectrum-feed/pkg/config"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
// Reactions are small single-row writes, so the pool is modest.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    15,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
	}
}

// Open creates the connection pool for dsn, applies the pool settings
// from the environment and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cfg := getConnectionConfigFromEnv()
	configurePool(db, cfg)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}

func configurePool(db *sql.DB, cfg ConnectionConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// getConnectionConfigFromEnv reads the pool settings. Unset, unparsable
// or non-positive values fall back to the defaults.
func getConnectionConfigFromEnv() ConnectionConfig {
	def := DefaultConnectionConfig()
	return ConnectionConfig{
		MaxOpenConns:    positiveInt(pkgconfig.GetEnvInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns), def.MaxOpenConns),
		MaxIdleConns:    positiveInt(pkgconfig.GetEnvInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns), def.MaxIdleConns),
		ConnMaxLifetime: positiveDuration(pkgconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime), def.ConnMaxLifetime),
		ConnMaxIdleTime: positiveDuration(pkgconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime), def.ConnMaxIdleTime),
	}
}

func positiveInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func positiveDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
