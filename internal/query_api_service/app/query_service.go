package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
	cache "github.com/patrickmn/go-cache"
)

const (
	ckCategoryStats = "stats_categories"
	ckMonthlyStats  = "stats_monthly_%d"
)

// TransactionPage is one page of a filtered transaction listing.
type TransactionPage struct {
	Records  []ingestion.TransactionRecord
	Page     int
	PageSize int
	Total    int64
}

// QueryService answers read requests over the persisted records. Aggregate
// stats are cached: the store only changes when an ingestion run is executed,
// so mildly stale stats are acceptable.
type QueryService struct {
	repo       domain.TransactionReadRepository
	statsCache *cache.Cache
	logger     *slog.Logger
}

// NewQueryService creates a QueryService caching stats responses for ttl.
func NewQueryService(repo domain.TransactionReadRepository, ttl time.Duration, logger *slog.Logger) *QueryService {
	return &QueryService{
		repo:       repo,
		statsCache: cache.New(ttl, 2*ttl),
		logger:     logger,
	}
}

// ListTransactions returns the requested page, newest first.
func (s *QueryService) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (*TransactionPage, error) {
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &TransactionPage{
		Records:  records,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// GetTransaction returns one record or ingestion domain ErrNotFound.
func (s *QueryService) GetTransaction(ctx context.Context, id uuid.UUID) (*ingestion.TransactionRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// CategoryStats returns per-category aggregates, served from cache when warm.
func (s *QueryService) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	if cached, found := s.statsCache.Get(ckCategoryStats); found {
		return cached.([]domain.CategoryStat), nil
	}

	stats, err := s.repo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing category stats: %w", err)
	}
	s.statsCache.Set(ckCategoryStats, stats, cache.DefaultExpiration)
	return stats, nil
}

// MonthlyStats returns the monthly series of one year, served from cache when
// warm.
func (s *QueryService) MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error) {
	key := fmt.Sprintf(ckMonthlyStats, year)
	if cached, found := s.statsCache.Get(key); found {
		return cached.([]domain.MonthlyStat), nil
	}

	stats, err := s.repo.MonthlyStats(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("computing monthly stats for %d: %w", year, err)
	}
	s.statsCache.Set(key, stats, cache.DefaultExpiration)
	return stats, nil
}
