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

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/momoinsights/golang_services/internal/platform/config"
	"github.com/momoinsights/golang_services/internal/platform/database"
	"github.com/momoinsights/golang_services/internal/platform/logger"

	"github.com/momoinsights/golang_services/internal/query_api_service/app"
	"github.com/momoinsights/golang_services/internal/query_api_service/repository/postgres"
	transport "github.com/momoinsights/golang_services/internal/query_api_service/transport/http"
)

const (
	serviceName     = "query_api_service"
	shutdownTimeout = 10 * time.Second
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger = appLogger.With("service", serviceName)
	appLogger.Info("Starting service...")

	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"port", cfg.QueryAPIServicePort,
		"metrics_port", cfg.QueryAPIServiceMetricsPort,
		"stats_cache_ttl_minutes", cfg.StatsCacheTTLMinutes,
		"postgres_dsn_present", cfg.PostgresDSN != "",
	)

	dbPool, err := database.NewDBPool(mainCtx, cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Database connection pool initialized")

	queryRepo := postgres.NewPgTransactionQueryRepository(dbPool, appLogger)
	queryService := app.NewQueryService(
		queryRepo,
		time.Duration(cfg.StatsCacheTTLMinutes)*time.Minute,
		appLogger.With("component", "query_service"),
	)

	transactionHandler := transport.NewTransactionHandler(queryService, appLogger)
	statsHandler := transport.NewStatsHandler(queryService, appLogger)

	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

	router := chi.NewRouter()
	router.Use(chi_middleware.RequestID)
	router.Use(chi_middleware.Recoverer)
	router.Use(transport.PrometheusMetricsMiddleware)
	router.Use(transport.CORSMiddleware(cfg.DashboardOrigin))
	router.Use(transport.RateLimitMiddleware(limiter, appLogger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbPool.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		transactionHandler.RegisterRoutes(r)
		statsHandler.RegisterRoutes(r)
	})

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.QueryAPIServicePort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.QueryAPIServiceMetricsPort),
		Handler: promhttp.Handler(),
	}

	g, gCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("API server starting", "address", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		appLogger.Info("Metrics server starting", "address", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("API server shutdown error", "error", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Metrics server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Service failed", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Service stopped gracefully")
}
