// Package http provides the HTTP middleware and operational endpoints of the
// gateway: health, readiness, liveness, metrics, request logging and limits.
// Resource handlers live in the feed, article, reaction and source subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"spectrum-feed/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// Pinger is implemented by the Redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of the database, the cache and the source catalog.
//
// A nil Cache means caching is disabled and is reported as healthy.
// An empty catalog is valid but reported as degraded since every feed will be empty.
type HealthHandler struct {
	DB          *sql.DB
	Cache       Pinger
	CatalogSize int
	TrackedIPs  func() int
	Version     string
}

// ServeHTTP returns 200 when every check is healthy or degraded, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"database": h.checkDatabase(ctx),
		"cache":    checkCache(ctx, h.Cache),
		"catalog":  h.checkCatalog(),
	}
	if h.TrackedIPs != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"tracked_clients": h.TrackedIPs()},
		}
	}

	status, code := "healthy", http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkDatabase pings the database and reports connection pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections == 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func checkCache(ctx context.Context, cache Pinger) CheckStatus {
	if cache == nil {
		return CheckStatus{Status: "healthy", Message: "disabled"}
	}
	// キャッシュ障害時もフィードは提供できる
	if err := cache.Ping(ctx); err != nil {
		return CheckStatus{Status: "degraded", Message: respond.SanitizeError(err)}
	}
	return CheckStatus{Status: "healthy"}
}

func (h *HealthHandler) checkCatalog() CheckStatus {
	details := map[string]any{"sources": h.CatalogSize}
	if h.CatalogSize == 0 {
		return CheckStatus{Status: "degraded", Message: "catalog is empty", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers readiness probes. Only the database gates readiness;
// the cache is fail-open.
type ReadyHandler struct {
	DB *sql.DB
}

// ServeHTTP returns 200 "ready" once the database answers a ping.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 "alive".
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("failed to write probe response", slog.Any("error", err))
	}
}
