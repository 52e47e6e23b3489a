// Package domain defines the read-side contracts of the query API service.
// Transaction records themselves are owned by the ingestion service's domain;
// this service only ever reads them.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
)

// TransactionFilter narrows a transaction listing. Nil fields mean no
// constraint on that dimension.
type TransactionFilter struct {
	Category *ingestion.Category
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// CategoryStat aggregates the persisted records of one category.
type CategoryStat struct {
	Category    ingestion.Category `json:"category"`
	Count       int64              `json:"count"`
	AmountTotal int64              `json:"amount_total"`
	FeeTotal    int64              `json:"fee_total"`
}

// MonthlyStat aggregates records of a single month.
type MonthlyStat struct {
	Year        int   `json:"year"`
	Month       int   `json:"month"`
	Count       int64 `json:"count"`
	AmountTotal int64 `json:"amount_total"`
}

// TransactionReadRepository is the query surface over persisted records.
type TransactionReadRepository interface {
	List(ctx context.Context, filter TransactionFilter) ([]ingestion.TransactionRecord, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ingestion.TransactionRecord, error)
	CategoryStats(ctx context.Context) ([]CategoryStat, error)
	MonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error)
}
