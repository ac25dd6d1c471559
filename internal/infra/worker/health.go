package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthServer serves the worker's probes and metrics:
//   - /health: Liveness probe (always returns 200 OK)
//   - /health/ready: Readiness probe (200 once the scheduler runs, 503 before)
//   - /metrics: Prometheus metrics
//
// The server supports graceful shutdown via context cancellation.
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	isReady *atomic.Bool
	lastRun *atomic.Pointer[RunStatus]
	server  *http.Server
}

// RunStatus describes the latest warm run.
type RunStatus struct {
	FinishedAt time.Time `json:"finished_at"`
	Points     int       `json:"points"`
	Warmed     int       `json:"warmed"`
	Failed     int       `json:"failed"`
}

// healthResponse is the JSON response format for health check endpoints.
type healthResponse struct {
	Status  string     `json:"status"`
	LastRun *RunStatus `json:"last_run,omitempty"`
}

// NewHealthServer creates a health server listening on addr. It starts as not ready.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		addr:    addr,
		logger:  logger,
		isReady: &atomic.Bool{},
		lastRun: &atomic.Pointer[RunStatus]{},
	}
}

// Handler returns the probe and metrics routes.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is cancelled, then shuts down within 5 seconds.
// It returns http.ErrServerClosed after a graceful shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady sets the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

// RecordRun stores the outcome of a warm run for the readiness response.
func (h *HealthServer) RecordRun(s RunStatus) {
	h.lastRun.Store(&s)
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if !h.isReady.Load() {
		h.write(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
		return
	}
	h.write(w, http.StatusOK, healthResponse{Status: "ok", LastRun: h.lastRun.Load()})
}

func (h *HealthServer) write(w http.ResponseWriter, status int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
