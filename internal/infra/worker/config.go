package worker

import (
	"fmt"
	"log/slog"
	"time"

	"spectrum-feed/internal/pkg/config"
)

// WorkerConfig holds the configuration for the cache warming worker.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Every field has a default and a validation rule, so the worker can run
// even when the environment is missing or wrong.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the warm job.
	// Format: "minute hour day month weekday"
	// Default: "*/15 * * * *"
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "UTC"
	Timezone string

	// WarmTimeout bounds a single warm run. Range: 10s-1h
	// Default: 5 minutes
	WarmTimeout time.Duration

	// GridPoints is the number of warm points per axis of the catalog's
	// bounding box; a run warms GridPoints² coordinates. Range: 1-20
	// Default: 5
	GridPoints int

	// RunOnStart warms the cache once at startup before the first tick.
	// Default: true
	RunOnStart bool

	// HealthPort is the port of the health and metrics server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with the default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/15 * * * *",
		Timezone:     "UTC",
		WarmTimeout:  5 * time.Minute,
		GridPoints:   5,
		RunOnStart:   true,
		HealthPort:   9091,
	}
}

// Validate checks the configuration and reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.WarmTimeout, 10*time.Second, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("warm timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.GridPoints, 1, 20); err != nil {
		errs = append(errs, fmt.Errorf("grid points: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration with a fail-open strategy:
// an invalid value falls back to its default, logs a warning and is counted
// in the config metrics. It never returns an error.
//
// Environment variables:
//   - CRON_SCHEDULE: Cron expression (default: "*/15 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - WARM_TIMEOUT: Duration 10s-1h (default: 5m)
//   - WARM_GRID_POINTS: Integer 1-20 (default: 5)
//   - WARM_ON_START: Boolean (default: true)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	tr := config.NewFallbackTracker(logger, metrics.ConfigMetrics)

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	tr.Track("cron_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	tr.Track("timezone", result)

	result = config.LoadEnvDuration("WARM_TIMEOUT", cfg.WarmTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, time.Hour)
	})
	cfg.WarmTimeout = result.Value.(time.Duration)
	tr.Track("warm_timeout", result)

	result = config.LoadEnvInt("WARM_GRID_POINTS", cfg.GridPoints, func(v int) error {
		return config.ValidateIntRange(v, 1, 20)
	})
	cfg.GridPoints = result.Value.(int)
	tr.Track("grid_points", result)

	result = config.LoadEnvBool("WARM_ON_START", cfg.RunOnStart)
	cfg.RunOnStart = result.Value.(bool)
	tr.Track("warm_on_start", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	tr.Track("health_port", result)

	tr.Finish()

	return &cfg, nil
}
