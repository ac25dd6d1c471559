package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgconfig "spectrum-feed/pkg/config"
)

// cronParser accepts standard five-field expressions and descriptors like "@hourly".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule checks a five-field cron expression ("*/15 * * * *").
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks an IANA timezone name ("UTC", "Asia/Tokyo").
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}

// ValidateDuration checks min <= d <= max.
func ValidateDuration(d, min, max time.Duration) error {
	return pkgconfig.ValidateRange(d, min, max)
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	return pkgconfig.ValidateRange(value, min, max)
}
