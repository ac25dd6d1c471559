package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"spectrum-feed/internal/app"
	"spectrum-feed/internal/config"
	pgRepo "spectrum-feed/internal/infra/adapter/persistence/postgres"
	"spectrum-feed/internal/infra/db"
	"spectrum-feed/internal/infra/fetcher"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/observability/tracing"
	pkgconfig "spectrum-feed/internal/pkg/config"

	artUC "spectrum-feed/internal/usecase/article"
	reactUC "spectrum-feed/internal/usecase/reaction"

	hhttp "spectrum-feed/internal/handler/http"
	harticle "spectrum-feed/internal/handler/http/article"
	hfeed "spectrum-feed/internal/handler/http/feed"
	"spectrum-feed/internal/handler/http/middleware"
	hreaction "spectrum-feed/internal/handler/http/reaction"
	"spectrum-feed/internal/handler/http/requestid"
	hsrc "spectrum-feed/internal/handler/http/source"

	_ "spectrum-feed/docs" // swagger docs
)

// @title           Spectrum Feed API
// @version         1.0
// @description     バイアス平面上の座標から視点のバランスを取ったニュースフィードを組み立てる API
// @description     記事本文の抽出と絵文字リアクションの記録も提供します。

// @contact.name   API Support
// @contact.url    https://github.com/spectrum-feed/spectrum-feed

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

const (
	rateLimitCleanupInterval = time.Minute
	dbStatsInterval          = 15 * time.Second
)

func main() {
	// .env は任意（本番では環境変数を直接渡す）
	_ = godotenv.Load()

	logger := initLogger()
	cfg := loadConfig(logger)

	shutdownTracing := tracing.Init(float64(cfg.TraceSamplePercent) / 100)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	stack, err := app.BuildFeed(logger, cfg)
	if err != nil {
		logger.Error("failed to build feed stack", slog.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logger.Error("failed to close cache", slog.Any("error", err))
		}
	}()

	serverComponents := setupServer(logger, cfg, database, stack)
	runServer(logger, cfg, serverComponents)
}

// initLogger initializes the JSON logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the application configuration or exits.
func loadConfig(logger *slog.Logger) *config.AppConfig {
	cfg, err := config.LoadAppConfig(logger, pkgconfig.NewConfigMetrics("app"))
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("addr", cfg.HTTPAddr),
		slog.String("version", cfg.Version),
		slog.Int("feed_slots", cfg.FeedSlots),
		slog.Bool("balance_sides", cfg.BalanceSides),
		slog.Bool("rate_limit", cfg.RateLimitEnabled))
	return cfg
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Error("failed to open database", slog.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *middleware.IPRateLimiter
	DB          *sql.DB
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB, stack *app.FeedStack) *ServerComponents {
	extractCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load article extraction configuration", slog.Any("error", err))
		os.Exit(1)
	}
	artSvc := artUC.NewService(fetcher.NewReadabilityExtractor(extractCfg), stack.ArticleCache())
	reactSvc := &reactUC.Service{Repo: pgRepo.NewReactionRepo(database)}

	// Load trusted proxy configuration for IP extraction
	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if proxyConfig.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	limitCfg := middleware.DefaultRateLimitConfig()
	limitCfg.Enabled = cfg.RateLimitEnabled
	limitCfg.RequestsPerSecond = float64(cfg.RateLimitRPS)
	limitCfg.Burst = cfg.RateLimitBurst
	if err := limitCfg.Validate(); err != nil {
		logger.Error("invalid rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}
	limiter := middleware.NewIPRateLimiter(limitCfg, middleware.NewIPExtractor(proxyConfig))
	if !limitCfg.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()

	// ヘルスチェック
	health := &hhttp.HealthHandler{
		DB:          database,
		CatalogSize: stack.Catalog.Len(),
		TrackedIPs:  limiter.Len,
		Version:     cfg.Version,
	}
	if stack.Redis != nil {
		health.Cache = stack.Redis
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hfeed.Register(mux, stack.Feed)
	harticle.Register(mux, artSvc)
	hreaction.Register(mux, reactSvc)
	hsrc.Register(mux, stack.Catalog)

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, limiter),
		RateLimiter: limiter,
		DB:          database,
	}
}

// applyMiddleware wraps the handler with the middleware chain, outermost first:
// Request ID → Tracing → Recovery → Logging → Metrics → Input validation →
// IP Rate Limit → Body Limit → Timeout.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
		limiter.Middleware,
		hhttp.LimitRequestBody(int64(cfg.MaxBodyBytes)),
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.AppConfig, components *ServerComponents) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go components.RateLimiter.RunCleanup(ctx, rateLimitCleanupInterval)
	go db.ReportPoolStats(ctx, components.DB, dbStatsInterval)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Cancel background goroutines (rate limit cleanup)
	cancel()
	logger.Info("server stopped")
}
