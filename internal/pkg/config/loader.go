// Package config loads component configuration from the environment with a
// fail-open strategy: a value that does not parse or validate is replaced by
// its default and reported as a warning, never as an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigLoadResult is the outcome of loading one environment variable.
//
// Value holds the loaded value or the default; callers assert it to the
// loader's type:
//
//	result := LoadEnvDuration("WARM_TIMEOUT", 5*time.Minute, nil)
//	timeout := result.Value.(time.Duration)
type ConfigLoadResult struct {
	Value           any
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns envKey or defaultValue when unset. No validation.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string and validates it.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	return load(envKey, defaultValue,
		func(s string) (string, error) { return s, nil },
		validator,
		func(v string) string { return v })
}

// LoadEnvDuration loads a time.ParseDuration value ("30s", "5m", "1h30m") and validates it.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	return load(envKey, defaultValue, parseDuration, validator, time.Duration.String)
}

// LoadEnvInt loads a base-10 integer and validates it.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	return load(envKey, defaultValue, parseInt, validator, strconv.Itoa)
}

// LoadEnvBool loads a boolean. Accepted spellings are those of strconv.ParseBool.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	return load(envKey, defaultValue, parseBool, nil, strconv.FormatBool)
}

// load reads envKey and runs it through parse and validate. An unset or
// empty variable yields the default without a warning.
func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validate func(T) error, format func(T) string) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%s'",
				envKey, raw, err, format(defaultValue),
			)},
			FallbackApplied: true,
		}
	}
	return ConfigLoadResult{Value: value}
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration format")
	}
	return d, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer format")
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
	}
	return b, nil
}
