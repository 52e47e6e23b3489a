package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
)

type statsQueryService interface {
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)
	MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error)
}

// StatsHandler serves the aggregate endpoints backing the dashboard charts.
type StatsHandler struct {
	service statsQueryService
	logger  *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(service statsQueryService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With("handler", "stats"),
	}
}

// RegisterRoutes registers stats routes with the given router.
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats/categories", h.handleCategoryStats)
	r.Get("/stats/monthly", h.handleMonthlyStats)
}

func (h *StatsHandler) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.CategoryStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute category stats", "error", err)
		jsonError(w, h.logger, "failed to compute category stats", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []domain.CategoryStat{}
	}

	writeJSON(w, h.logger, http.StatusOK, CategoryStatsResponse{Data: stats})
}

func (h *StatsHandler) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 9999 {
			jsonError(w, h.logger, "invalid 'year' parameter", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	stats, err := h.service.MonthlyStats(ctx, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute monthly stats", "error", err, "year", year)
		jsonError(w, h.logger, "failed to compute monthly stats", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []domain.MonthlyStat{}
	}

	writeJSON(w, h.logger, http.StatusOK, MonthlyStatsResponse{Year: year, Data: stats})
}
