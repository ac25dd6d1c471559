package respond

import "spectrum-feed/internal/observability/logging"

// SanitizeError masks credentials in an error message before it is logged.
func SanitizeError(err error) string {
	return logging.SanitizeError(err)
}
