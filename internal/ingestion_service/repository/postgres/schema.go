package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the ingestion tables. The ingestion binary runs
// this at startup so a fresh database needs no manual preparation.
const schemaStatements = `
CREATE TABLE IF NOT EXISTS transaction_records (
	id UUID PRIMARY KEY,
	category TEXT NOT NULL,
	amount BIGINT NOT NULL DEFAULT 0,
	currency TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	sender TEXT,
	receiver TEXT,
	balance BIGINT,
	fee BIGINT NOT NULL DEFAULT 0,
	transaction_id TEXT,
	external_transaction_id TEXT,
	raw_body TEXT NOT NULL,
	source_attributes JSONB,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transaction_records_category ON transaction_records (category);
CREATE INDEX IF NOT EXISTS idx_transaction_records_occurred_at ON transaction_records (occurred_at);

CREATE TABLE IF NOT EXISTS unprocessed_messages (
	id UUID PRIMARY KEY,
	address TEXT,
	body TEXT,
	attributes JSONB,
	failure_reason TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the ingestion tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) error {
	if _, err := db.Exec(ctx, schemaStatements); err != nil {
		return fmt.Errorf("ensuring ingestion schema: %w", err)
	}
	logger.InfoContext(ctx, "Ingestion schema ensured")
	return nil
}
