package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/janmarg/civicreport/config"
	"github.com/janmarg/civicreport/internal/analytics"
	"github.com/janmarg/civicreport/internal/api"
	"github.com/janmarg/civicreport/internal/database"
	"github.com/janmarg/civicreport/internal/geocoder"
	"github.com/janmarg/civicreport/internal/logger"
	"github.com/janmarg/civicreport/internal/metrics"
	middlewares "github.com/janmarg/civicreport/internal/middleware"
	"github.com/janmarg/civicreport/internal/pipeline"
	"github.com/janmarg/civicreport/internal/ratelimit"
	"github.com/janmarg/civicreport/internal/service"
	"github.com/janmarg/civicreport/internal/store"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting CivicReport application",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Initialize metrics
	if cfg.Metrics.Enabled {
		metrics.Init()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close(ctx)

	// Initialize store, running migrations when Postgres is configured
	issueStore := store.New(db)
	if pg, ok := issueStore.(*store.PostgresStore); ok {
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}
	}

	// Initialize domain services
	geo := geocoder.New()
	svc := service.New(issueStore, geo)
	an := analytics.New(issueStore)

	// Redis-backed submission limits (optional)
	var limiter *ratelimit.Manager
	if cfg.Redis.URL != "" {
		limiter, err = ratelimit.NewManager(cfg.Redis.URL, cfg.Submit.PerMinute, cfg.Submit.PerDay)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer limiter.Close()
		logger.Info("Submission limits enabled", "per_minute", cfg.Submit.PerMinute, "per_day", cfg.Submit.PerDay)
	}

	// Backfill pipeline scores issues that were stored without insights
	if cfg.Backfill.Enabled {
		backfill := pipeline.New(issueStore, geo, cfg.Backfill)
		go func() {
			if err := backfill.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Backfill pipeline error", "error", err)
			}
		}()
	}

	// Setup HTTP server
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Logging)
	r.Use(middlewares.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.ReadTimeout))
	r.Use(middlewares.Security)
	r.Use(middlewares.CORS(cfg.Server.CORSAllowedOrigins))
	r.Use(middlewares.RateLimit(cfg.Server.RateLimitPerMinute))

	// Initialize API handlers
	apiHandler := api.NewHandler(svc, an, issueStore, db, limiter, Version, BuildTime, GitCommit)
	apiHandler.RegisterRoutes(r)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

func startMetricsServer(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", "address", addr, "path", path)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}
