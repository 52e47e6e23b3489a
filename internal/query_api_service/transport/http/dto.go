package http

import (
	"time"

	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
)

// TransactionResponse is the wire shape of one transaction record.
type TransactionResponse struct {
	ID                    string            `json:"id"`
	Category              string            `json:"category"`
	Amount                int64             `json:"amount"`
	Currency              string            `json:"currency"`
	OccurredAt            time.Time         `json:"occurred_at"`
	Sender                *string           `json:"sender,omitempty"`
	Receiver              *string           `json:"receiver,omitempty"`
	Balance               *int64            `json:"balance,omitempty"`
	Fee                   int64             `json:"fee"`
	TransactionID         *string           `json:"transaction_id,omitempty"`
	ExternalTransactionID *string           `json:"external_transaction_id,omitempty"`
	RawBody               string            `json:"raw_body"`
	SourceAttributes      map[string]string `json:"source_attributes,omitempty"`
}

// TransactionListResponse is a paginated listing envelope.
type TransactionListResponse struct {
	Data     []TransactionResponse `json:"data"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Total    int64                 `json:"total"`
}

// CategoryStatsResponse wraps the per-category aggregates.
type CategoryStatsResponse struct {
	Data []domain.CategoryStat `json:"data"`
}

// MonthlyStatsResponse wraps the monthly series of one year.
type MonthlyStatsResponse struct {
	Year int                  `json:"year"`
	Data []domain.MonthlyStat `json:"data"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toTransactionResponse(record ingestion.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:                    record.ID.String(),
		Category:              string(record.Category),
		Amount:                record.Amount,
		Currency:              record.Currency,
		OccurredAt:            record.OccurredAt,
		Sender:                record.Sender,
		Receiver:              record.Receiver,
		Balance:               record.Balance,
		Fee:                   record.Fee,
		TransactionID:         record.TransactionID,
		ExternalTransactionID: record.ExternalTransactionID,
		RawBody:               record.RawBody,
		SourceAttributes:      record.SourceAttributes,
	}
}
