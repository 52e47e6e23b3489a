package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// DefaultBatchSize bounds how many persist attempts run concurrently.
const DefaultBatchSize = 50

// ArchiveReader loads the full message archive in archive order.
type ArchiveReader interface {
	Read(path string) ([]domain.RawMessage, error)
}

// BatchOrchestrator drives one ingestion run: it loads the archive, builds and
// persists records in fixed-size concurrent batches, dead-letters per-message
// failures, and writes the run report. Batches run sequentially; only the
// persist attempts within a batch are concurrent.
type BatchOrchestrator struct {
	reader       ArchiveReader
	builder      *RecordBuilder
	transactions domain.TransactionRepository
	unprocessed  domain.UnprocessedMessageRepository
	reports      domain.RunReportWriter
	logger       *slog.Logger
	batchSize    int
}

// NewBatchOrchestrator creates a BatchOrchestrator. A non-positive batchSize
// falls back to DefaultBatchSize.
func NewBatchOrchestrator(
	reader ArchiveReader,
	builder *RecordBuilder,
	transactions domain.TransactionRepository,
	unprocessed domain.UnprocessedMessageRepository,
	reports domain.RunReportWriter,
	logger *slog.Logger,
	batchSize int,
) *BatchOrchestrator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchOrchestrator{
		reader:       reader,
		builder:      builder,
		transactions: transactions,
		unprocessed:  unprocessed,
		reports:      reports,
		logger:       logger,
		batchSize:    batchSize,
	}
}

// Run executes one full ingestion of the archive at archivePath. An unreadable
// or structurally malformed archive is the run's only fatal error. Every
// per-message failure is dead-lettered and counted as ignored; the summary
// always satisfies ProcessedCount + IgnoredCount == TotalMessages.
//
// Run is not idempotent: invoking it against a non-empty store duplicates
// records. The caller is responsible for running it against an empty store.
func (o *BatchOrchestrator) Run(ctx context.Context, archivePath string) (*domain.BatchRunSummary, error) {
	messages, err := o.reader.Read(archivePath)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}

	total := len(messages)
	o.logger.InfoContext(ctx, "Ingestion run starting", "archive_path", archivePath, "total_messages", total, "batch_size", o.batchSize)

	var processedCount, ignoredCount atomic.Int64

	for start := 0; start < total; start += o.batchSize {
		end := start + o.batchSize
		if end > total {
			end = total
		}
		batch := messages[start:end]
		batchStart := time.Now()

		var wg sync.WaitGroup
		for _, msg := range batch {
			wg.Add(1)
			go func(msg domain.RawMessage) {
				defer wg.Done()
				if err := o.processMessage(ctx, msg); err != nil {
					ignoredCount.Add(1)
					o.unprocessed.Append(ctx, msg, err.Error())
					o.logger.WarnContext(ctx, "Message ignored", "address", msg.Address, "reason", err.Error())
					return
				}
				processedCount.Add(1)
			}(msg)
		}
		wg.Wait()

		batchDurationHist.Observe(time.Since(batchStart).Seconds())
		o.logger.InfoContext(ctx, "Batch complete",
			"processed_so_far", processedCount.Load(),
			"ignored_so_far", ignoredCount.Load(),
			"total", total,
		)
	}

	summary := &domain.BatchRunSummary{
		TotalMessages:  int64(total),
		ProcessedCount: processedCount.Load(),
		IgnoredCount:   ignoredCount.Load(),
		Timestamp:      time.Now().UTC(),
	}

	if err := o.reports.Write(ctx, *summary); err != nil {
		// The run itself completed; a report write failure is not fatal.
		o.logger.ErrorContext(ctx, "Failed to write run report", "error", err)
	}

	o.logger.InfoContext(ctx, "Ingestion run finished",
		"total", summary.TotalMessages,
		"processed", summary.ProcessedCount,
		"ignored", summary.IgnoredCount,
	)
	return summary, nil
}

// processMessage builds and persists one record. Any fault, including a panic
// during build or save, is converted into an error so it stays isolated to
// this message.
func (o *BatchOrchestrator) processMessage(ctx context.Context, msg domain.RawMessage) (err error) {
	// The metric must agree with the run summary: a recovered panic is an
	// ignored message too. Build assigns the real category before any panic
	// a storage driver could raise.
	category := string(domain.CategoryUnknown)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected fault while processing message: %v", r)
			messagesProcessedCounter.WithLabelValues(category, "ignored").Inc()
		}
	}()

	record := o.builder.Build(msg)
	category = string(record.Category)
	if err := o.transactions.Save(ctx, record); err != nil {
		messagesProcessedCounter.WithLabelValues(category, "ignored").Inc()
		return fmt.Errorf("saving record: %w", err)
	}

	messagesProcessedCounter.WithLabelValues(category, "persisted").Inc()
	return nil
}
