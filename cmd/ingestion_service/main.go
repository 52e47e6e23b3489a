package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/momoinsights/golang_services/internal/platform/config"
	"github.com/momoinsights/golang_services/internal/platform/database"
	"github.com/momoinsights/golang_services/internal/platform/logger"

	"github.com/momoinsights/golang_services/internal/ingestion_service/adapters/report"
	"github.com/momoinsights/golang_services/internal/ingestion_service/adapters/smsbackup"
	"github.com/momoinsights/golang_services/internal/ingestion_service/app"
	"github.com/momoinsights/golang_services/internal/ingestion_service/repository/postgres"
)

const (
	serviceName     = "ingestion_service"
	shutdownTimeout = 5 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

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
		"archive_path", cfg.ArchivePath,
		"batch_size", cfg.IngestionBatchSize,
		"currency_code", cfg.CurrencyCode,
		"report_path", cfg.ReportPath,
		"postgres_dsn_present", cfg.PostgresDSN != "",
	)

	dbPool, err := database.NewDBPool(mainCtx, cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Database connection pool initialized")

	if err := postgres.EnsureSchema(mainCtx, dbPool, appLogger); err != nil {
		appLogger.Error("Failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	transactionRepo := postgres.NewPgTransactionRepository(dbPool, appLogger)
	unprocessedRepo := postgres.NewPgUnprocessedMessageRepository(dbPool, appLogger)
	archiveReader := smsbackup.NewReader(appLogger)
	reportWriter := report.NewFileWriter(cfg.ReportPath, appLogger)
	recordBuilder := app.NewRecordBuilder(cfg.CurrencyCode)

	orchestrator := app.NewBatchOrchestrator(
		archiveReader,
		recordBuilder,
		transactionRepo,
		unprocessedRepo,
		reportWriter,
		appLogger.With("component", "batch_orchestrator"),
		cfg.IngestionBatchSize,
	)

	// Metrics are exposed for the duration of the run so a scraper can
	// observe long ingestions.
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.IngestionServiceMetricsPort),
		Handler: promhttp.Handler(),
	}

	g, runCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("Metrics server starting", "address", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	var runErr error
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()

		summary, err := orchestrator.Run(runCtx, cfg.ArchivePath)
		if err != nil {
			runErr = err
			return nil // shut the metrics server down, report below
		}

		storedCount, err := transactionRepo.Count(runCtx)
		if err != nil {
			appLogger.Warn("Failed to count persisted records", "error", err)
		} else {
			appLogger.Info("Persistence store state", "record_count", storedCount)
		}

		appLogger.Info("Run summary",
			"total", summary.TotalMessages,
			"processed", summary.ProcessedCount,
			"ignored", summary.IgnoredCount,
		)
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Service failed", "error", err)
		os.Exit(1)
	}
	if runErr != nil {
		appLogger.Error("Ingestion run failed", "error", runErr)
		os.Exit(1)
	}

	appLogger.Info("Service finished")
}
