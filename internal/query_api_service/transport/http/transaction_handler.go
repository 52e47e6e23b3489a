package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/app"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// transactionQueryService is what this handler needs from the app layer.
type transactionQueryService interface {
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (*app.TransactionPage, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*ingestion.TransactionRecord, error)
}

// TransactionHandler serves the transaction listing and detail endpoints.
type TransactionHandler struct {
	service transactionQueryService
	logger  *slog.Logger
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(service transactionQueryService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  logger.With("handler", "transaction"),
	}
}

// RegisterRoutes registers transaction routes with the given router.
func (h *TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/transactions", h.handleListTransactions)
	r.Get("/transactions/{transactionID}", h.handleGetTransaction)
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseTransactionFilter(r)
	if err != nil {
		jsonError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	pageSize := parsePositiveInt(r.URL.Query().Get("page_size"), defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	result, err := h.service.ListTransactions(ctx, filter, page, pageSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list transactions", "error", err)
		jsonError(w, h.logger, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	response := TransactionListResponse{
		Data:     make([]TransactionResponse, 0, len(result.Records)),
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	}
	for _, record := range result.Records {
		response.Data = append(response.Data, toTransactionResponse(record))
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}

func (h *TransactionHandler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		jsonError(w, h.logger, "invalid transaction id", http.StatusBadRequest)
		return
	}

	record, err := h.service.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, ingestion.ErrNotFound) {
			jsonError(w, h.logger, "transaction not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get transaction", "error", err, "transaction_id", id)
		jsonError(w, h.logger, "failed to get transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toTransactionResponse(*record))
}

// parseTransactionFilter reads the category/from/to query params. Dates are
// RFC3339; the "to" bound is exclusive.
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter
	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" {
		category := ingestion.Category(raw)
		if !category.IsValid() {
			return filter, errors.New("unknown category: " + raw)
		}
		filter.Category = &category
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		filter.To = &to
	}

	return filter, nil
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func jsonError(w http.ResponseWriter, logger *slog.Logger, message string, status int) {
	writeJSON(w, logger, status, ErrorResponse{Error: message})
}
