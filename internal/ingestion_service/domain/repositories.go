package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// TransactionRepository is the persistence collaborator for transaction
// records. Save is a plain insert: the pipeline makes no idempotency
// guarantee, and re-running an archive against a non-empty store duplicates
// its records.
type TransactionRepository interface {
	Save(ctx context.Context, record *TransactionRecord) error
	Count(ctx context.Context) (int64, error)
}

// UnprocessedMessageRepository is the append-only dead-letter sink for
// messages that failed build or persistence. Append never raises back to the
// caller; implementations swallow and log their own write failures.
type UnprocessedMessageRepository interface {
	Append(ctx context.Context, msg RawMessage, failureReason string)
}

// RunReportWriter persists the run summary as a report artifact,
// overwriting the previous run's artifact.
type RunReportWriter interface {
	Write(ctx context.Context, summary BatchRunSummary) error
}
