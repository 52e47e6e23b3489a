package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionReadRepository struct {
	mock.Mock
}

func (m *MockTransactionReadRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]ingestion.TransactionRecord, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]ingestion.TransactionRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*ingestion.TransactionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestion.TransactionRecord), args.Error(1)
}

func (m *MockTransactionReadRepository) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryStat), args.Error(1)
}

func (m *MockTransactionReadRepository) MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyStat), args.Error(1)
}

func newTestQueryService(repo domain.TransactionReadRepository) *QueryService {
	return NewQueryService(repo, 15*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestQueryService_ListTransactions_PaginationToOffset(t *testing.T) {
	mockRepo := new(MockTransactionReadRepository)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 20 && f.Offset == 40
	})).Return([]ingestion.TransactionRecord{}, int64(75), nil)

	page, err := newTestQueryService(mockRepo).ListTransactions(context.Background(), domain.TransactionFilter{}, 3, 20)

	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, int64(75), page.Total)
	mockRepo.AssertExpectations(t)
}

func TestQueryService_CategoryStats_Cached(t *testing.T) {
	mockRepo := new(MockTransactionReadRepository)
	stats := []domain.CategoryStat{{Category: ingestion.CategoryIncomingMoney, Count: 5}}
	mockRepo.On("CategoryStats", mock.Anything).Return(stats, nil).Once()

	service := newTestQueryService(mockRepo)

	first, err := service.CategoryStats(context.Background())
	require.NoError(t, err)
	second, err := service.CategoryStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stats, first)
	assert.Equal(t, stats, second)
	mockRepo.AssertNumberOfCalls(t, "CategoryStats", 1)
}

func TestQueryService_MonthlyStats_CachedPerYear(t *testing.T) {
	mockRepo := new(MockTransactionReadRepository)
	mockRepo.On("MonthlyStats", mock.Anything, 2023).Return([]domain.MonthlyStat{{Year: 2023, Month: 1, Count: 1}}, nil).Once()
	mockRepo.On("MonthlyStats", mock.Anything, 2024).Return([]domain.MonthlyStat{{Year: 2024, Month: 1, Count: 2}}, nil).Once()

	service := newTestQueryService(mockRepo)

	for _, year := range []int{2023, 2024, 2023, 2024} {
		stats, err := service.MonthlyStats(context.Background(), year)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, year, stats[0].Year)
	}
	mockRepo.AssertNumberOfCalls(t, "MonthlyStats", 2)
}

func TestQueryService_GetTransaction_NotFoundPassesThrough(t *testing.T) {
	mockRepo := new(MockTransactionReadRepository)
	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, ingestion.ErrNotFound)

	_, err := newTestQueryService(mockRepo).GetTransaction(context.Background(), id)

	assert.ErrorIs(t, err, ingestion.ErrNotFound)
}
