package domain

import "time"

// BatchRunSummary is the aggregate outcome of one full ingestion run.
// Invariant: ProcessedCount + IgnoredCount == TotalMessages.
type BatchRunSummary struct {
	TotalMessages  int64     `json:"total"`
	ProcessedCount int64     `json:"processed"`
	IgnoredCount   int64     `json:"ignored"`
	Timestamp      time.Time `json:"timestamp"`
}
