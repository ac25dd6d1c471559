package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"spectrum-feed/internal/app"
	"spectrum-feed/internal/config"
	"spectrum-feed/internal/domain/entity"
	workerPkg "spectrum-feed/internal/infra/worker"
	"spectrum-feed/internal/observability/logging"
	pkgconfig "spectrum-feed/internal/pkg/config"
	"spectrum-feed/internal/usecase/feed"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("warm_timeout", workerConfig.WarmTimeout),
		slog.Int("grid_points", workerConfig.GridPoints),
		slog.Int("health_port", workerConfig.HealthPort))

	// フィードのキャッシュキーを API と揃えるため、同じアプリ設定を読む
	appConfig, err := config.LoadAppConfig(logger, pkgconfig.NewConfigMetrics("app"))
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	stack, err := app.BuildFeed(logger, appConfig)
	if err != nil {
		logger.Error("failed to build feed stack", slog.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logger.Error("failed to close cache", slog.Any("error", err))
		}
	}()
	if stack.Redis == nil {
		logger.Error("REDIS_URL is required for the cache warmer")
		os.Exit(1)
	}

	// Start health check server (also serves /metrics)
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	job := &workerPkg.WarmJob{
		Warmer:  stack.Feed,
		Points:  warmPoints(logger, stack, workerConfig.GridPoints),
		Timeout: workerConfig.WarmTimeout,
		Metrics: workerMetrics,
		Health:  healthServer,
		Logger:  logger,
	}

	c := startCronWorker(ctx, logger, job, workerConfig, healthServer)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	// 実行中のジョブの完了を待つ
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(workerConfig.WarmTimeout):
		logger.Warn("warm run still in progress at shutdown")
	}
	cancel()
	logger.Info("worker stopped")
}

// warmPoints returns the grid of coordinates over the catalog's bounding box.
func warmPoints(logger *slog.Logger, stack *app.FeedStack, perAxis int) []entity.Coordinate {
	lo, hi, ok := stack.Catalog.Bounds()
	if !ok {
		logger.Warn("catalog is empty, nothing to warm")
		return nil
	}
	points := feed.Grid(lo, hi, perAxis)
	logger.Info("warm grid computed",
		slog.Int("points", len(points)),
		slog.Float64("min_x", lo.X), slog.Float64("min_y", lo.Y),
		slog.Float64("max_x", hi.X), slog.Float64("max_y", hi.Y))
	return points
}

// startCronWorker schedules the warm job and marks the worker as ready.
func startCronWorker(ctx context.Context, logger *slog.Logger, job *workerPkg.WarmJob, cfg *workerPkg.WorkerConfig, healthServer *workerPkg.HealthServer) *cron.Cron {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		job.Run(ctx)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	if cfg.RunOnStart {
		go job.Run(ctx)
	}

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	return c
}
