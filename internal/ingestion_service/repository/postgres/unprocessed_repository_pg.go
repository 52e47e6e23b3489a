package postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// PgUnprocessedMessageRepository is the PostgreSQL dead-letter sink for
// messages the pipeline could not persist as transaction records.
type PgUnprocessedMessageRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgUnprocessedMessageRepository creates a new PgUnprocessedMessageRepository.
func NewPgUnprocessedMessageRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgUnprocessedMessageRepository {
	return &PgUnprocessedMessageRepository{
		db:     dbPool,
		logger: logger,
	}
}

// Append records one failed message with its failure reason. The sink
// contract is append-only and non-raising: a failed insert is logged here and
// never surfaces to the batch.
func (r *PgUnprocessedMessageRepository) Append(ctx context.Context, msg domain.RawMessage, failureReason string) {
	attrs, err := json.Marshal(msg.Attributes)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error marshalling unprocessed message attributes", "error", err, "address", msg.Address)
		attrs = nil
	}

	query := `
		INSERT INTO unprocessed_messages (
			id, address, body, attributes, failure_reason, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err = r.db.Exec(ctx, query,
		uuid.New(),
		msg.Address,
		msg.Body,
		attrs,
		failureReason,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting unprocessed message",
			"error", err,
			"address", msg.Address,
			"failure_reason", failureReason,
		)
	}
}
