package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// PgTransactionRepository is the PostgreSQL implementation of
// domain.TransactionRepository.
type PgTransactionRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgTransactionRepository creates a new PgTransactionRepository.
func NewPgTransactionRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgTransactionRepository {
	return &PgTransactionRepository{
		db:     dbPool,
		logger: logger,
	}
}

// Save inserts one transaction record. It is a plain insert with no
// dedupe/upsert semantics; duplicate suppression is explicitly not part of
// the ingestion contract.
func (r *PgTransactionRepository) Save(ctx context.Context, record *domain.TransactionRecord) error {
	attrs, err := json.Marshal(record.SourceAttributes)
	if err != nil {
		return fmt.Errorf("marshalling source attributes: %w", err)
	}

	query := `
		INSERT INTO transaction_records (
			id, category, amount, currency, occurred_at,
			sender, receiver, balance, fee,
			transaction_id, external_transaction_id,
			raw_body, source_attributes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = r.db.Exec(ctx, query,
		record.ID,
		string(record.Category),
		record.Amount,
		record.Currency,
		record.OccurredAt,
		record.Sender,
		record.Receiver,
		record.Balance,
		record.Fee,
		record.TransactionID,
		record.ExternalTransactionID,
		record.RawBody,
		attrs,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting transaction record",
			"error", err,
			"record_id", record.ID,
			"category", record.Category,
		)
		return fmt.Errorf("inserting transaction record: %w", err)
	}

	return nil
}

// Count returns the number of persisted transaction records.
func (r *PgTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transaction_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting transaction records: %w", err)
	}
	return count, nil
}
