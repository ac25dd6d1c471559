package worker

import (
	"context"
	"log/slog"
	"time"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/usecase/feed"
)

// Warmer refreshes cached feeds at a set of coordinates.
type Warmer interface {
	Warm(ctx context.Context, points []entity.Coordinate) (feed.WarmResult, error)
}

// WarmJob is the scheduled cache warm run.
type WarmJob struct {
	Warmer  Warmer
	Points  []entity.Coordinate
	Timeout time.Duration
	Metrics *WorkerMetrics
	Health  *HealthServer
	Logger  *slog.Logger
}

// Run executes one warm run. Failures are logged and counted; a run with
// some failed points is "partial" and does not update the last success time.
func (j *WarmJob) Run(ctx context.Context) feed.WarmResult {
	start := time.Now()
	j.Logger.Info("cache warm started", slog.Int("points", len(j.Points)))

	// 実行時間の上限（設定から取得）
	ctx, cancel := context.WithTimeout(ctx, j.Timeout)
	defer cancel()

	res, err := j.Warmer.Warm(ctx, j.Points)
	elapsed := time.Since(start)

	status := "success"
	switch {
	case res.Warmed == 0 && res.Points > 0:
		status = "failure"
	case err != nil || res.Failed > 0:
		status = "partial"
	}

	j.Metrics.RecordRun(status)
	j.Metrics.RecordDuration(elapsed.Seconds())
	j.Metrics.RecordPoints(res.Warmed, res.Failed)
	if status == "success" {
		j.Metrics.RecordLastSuccess()
	}
	if j.Health != nil {
		j.Health.RecordRun(RunStatus{
			FinishedAt: time.Now().UTC(),
			Points:     res.Points,
			Warmed:     res.Warmed,
			Failed:     res.Failed,
		})
	}

	attrs := []any{
		slog.String("status", status),
		slog.Int("points", res.Points),
		slog.Int("warmed", res.Warmed),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", elapsed),
	}
	if err != nil {
		// 機密情報をマスクしてログ出力
		j.Logger.Warn("cache warm finished with errors",
			append(attrs, slog.String("error", logging.SanitizeError(err)))...)
		return res
	}
	j.Logger.Info("cache warm completed", attrs...)
	return res
}
