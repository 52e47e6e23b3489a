package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
)

const recordColumns = `
	id, category, amount, currency, occurred_at,
	sender, receiver, balance, fee,
	transaction_id, external_transaction_id,
	raw_body, source_attributes, created_at
`

// PgTransactionQueryRepository is the PostgreSQL implementation of
// domain.TransactionReadRepository.
type PgTransactionQueryRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgTransactionQueryRepository creates a new PgTransactionQueryRepository.
func NewPgTransactionQueryRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgTransactionQueryRepository {
	return &PgTransactionQueryRepository{
		db:     dbPool,
		logger: logger,
	}
}

// List returns one page of records matching filter, newest first, along with
// the unpaginated match count.
func (r *PgTransactionQueryRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]ingestion.TransactionRecord, int64, error) {
	where, args := buildFilterClause(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM transaction_records` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting filtered transaction records: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM transaction_records%s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		recordColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying transaction records: %w", err)
	}
	defer rows.Close()

	records := make([]ingestion.TransactionRecord, 0, filter.Limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transaction records: %w", err)
	}

	return records, total, nil
}

// GetByID returns one record or domain.ErrNotFound.
func (r *PgTransactionQueryRepository) GetByID(ctx context.Context, id uuid.UUID) (*ingestion.TransactionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_records WHERE id = $1`, recordColumns)
	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ingestion.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// CategoryStats aggregates count, amount and fee totals per category.
func (r *PgTransactionQueryRepository) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(fee), 0)
		FROM transaction_records
		GROUP BY category
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying category stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CategoryStat
	for rows.Next() {
		var stat domain.CategoryStat
		var category string
		if err := rows.Scan(&category, &stat.Count, &stat.AmountTotal, &stat.FeeTotal); err != nil {
			return nil, fmt.Errorf("scanning category stat: %w", err)
		}
		stat.Category = ingestion.Category(category)
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category stats: %w", err)
	}
	return stats, nil
}

// MonthlyStats aggregates count and amount totals per month of the given year.
func (r *PgTransactionQueryRepository) MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error) {
	query := `
		SELECT EXTRACT(MONTH FROM occurred_at)::int, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transaction_records
		WHERE EXTRACT(YEAR FROM occurred_at) = $1
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("querying monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.MonthlyStat
	for rows.Next() {
		stat := domain.MonthlyStat{Year: year}
		if err := rows.Scan(&stat.Month, &stat.Count, &stat.AmountTotal); err != nil {
			return nil, fmt.Errorf("scanning monthly stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly stats: %w", err)
	}
	return stats, nil
}

// buildFilterClause renders filter as a WHERE clause with positional args.
func buildFilterClause(filter domain.TransactionFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("occurred_at < $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanRecord(row pgx.Row) (*ingestion.TransactionRecord, error) {
	var record ingestion.TransactionRecord
	var category string
	var attrs []byte

	err := row.Scan(
		&record.ID,
		&category,
		&record.Amount,
		&record.Currency,
		&record.OccurredAt,
		&record.Sender,
		&record.Receiver,
		&record.Balance,
		&record.Fee,
		&record.TransactionID,
		&record.ExternalTransactionID,
		&record.RawBody,
		&attrs,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning transaction record: %w", err)
	}

	record.Category = ingestion.Category(category)
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &record.SourceAttributes); err != nil {
			return nil, fmt.Errorf("unmarshalling source attributes: %w", err)
		}
	}
	return &record, nil
}
