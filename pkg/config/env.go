// Package config provides small environment helpers shared by the infra
// packages. Invalid values never fail: they log a warning and use the default.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when it is unset or empty.
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns key parsed as a base-10 integer.
//
// Example:
//
//	port := GetEnvInt("PORT", 8080)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns key parsed by strconv.ParseBool ("1", "t", "true", "0", "f", "false", ...).
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns key parsed by time.ParseDuration ("500ms", "30s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// GetEnvStringList returns the comma-separated values of key, trimmed, with
// empty entries dropped. An unset key or one with no entries returns defaultValue.
//
// Example:
//
//	// RATE_LIMIT_TRUSTED_PROXIES="10.0.0.0/8, 172.16.0.0/12"
//	proxies := GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func warnInvalid(key, value, defaultValue string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
		slog.String("error", err.Error()))
}
