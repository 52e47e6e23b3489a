// Package report persists the run summary as a JSON report artifact.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// runReportDocument is the on-disk shape of the report artifact.
type runReportDocument struct {
	Ignored   int64  `json:"ignored"`
	Processed int64  `json:"processed"`
	Total     int64  `json:"total"`
	Timestamp string `json:"timestamp"`
}

// FileWriter writes the report artifact to a fixed path, replacing the
// previous run's artifact.
type FileWriter struct {
	path   string
	logger *slog.Logger
}

// NewFileWriter creates a FileWriter targeting path.
func NewFileWriter(path string, logger *slog.Logger) *FileWriter {
	return &FileWriter{path: path, logger: logger}
}

// Write renders the summary as indented JSON and overwrites the artifact.
func (w *FileWriter) Write(ctx context.Context, summary domain.BatchRunSummary) error {
	doc := runReportDocument{
		Ignored:   summary.IgnoredCount,
		Processed: summary.ProcessedCount,
		Total:     summary.TotalMessages,
		Timestamp: summary.Timestamp.UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling run report: %w", err)
	}

	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report to %s: %w", w.path, err)
	}

	w.logger.InfoContext(ctx, "Run report written", "path", w.path)
	return nil
}
