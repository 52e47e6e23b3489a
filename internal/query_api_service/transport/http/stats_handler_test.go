package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	ingestion "github.com/momoinsights/golang_services/internal/ingestion_service/domain"
	"github.com/momoinsights/golang_services/internal/query_api_service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsQueryService struct {
	mock.Mock
}

func (m *MockStatsQueryService) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryStat), args.Error(1)
}

func (m *MockStatsQueryService) MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyStat), args.Error(1)
}

func newStatsRouter(service statsQueryService) chi.Router {
	r := chi.NewRouter()
	NewStatsHandler(service, testLogger()).RegisterRoutes(r)
	return r
}

func TestStatsHandler_CategoryStats(t *testing.T) {
	mockService := new(MockStatsQueryService)
	mockService.On("CategoryStats", mock.Anything).Return([]domain.CategoryStat{
		{Category: ingestion.CategoryIncomingMoney, Count: 12, AmountTotal: 54000},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats/categories", nil)
	rr := httptest.NewRecorder()
	newStatsRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response CategoryStatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, ingestion.CategoryIncomingMoney, response.Data[0].Category)
	assert.Equal(t, int64(12), response.Data[0].Count)
}

func TestStatsHandler_CategoryStats_EmptyStoreYieldsEmptyArray(t *testing.T) {
	mockService := new(MockStatsQueryService)
	mockService.On("CategoryStats", mock.Anything).Return([]domain.CategoryStat{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats/categories", nil)
	rr := httptest.NewRecorder()
	newStatsRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
}

func TestStatsHandler_MonthlyStats(t *testing.T) {
	mockService := new(MockStatsQueryService)
	mockService.On("MonthlyStats", mock.Anything, 2024).Return([]domain.MonthlyStat{
		{Year: 2024, Month: 5, Count: 30, AmountTotal: 120000},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats/monthly?year=2024", nil)
	rr := httptest.NewRecorder()
	newStatsRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response MonthlyStatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 2024, response.Year)
	require.Len(t, response.Data, 1)
	assert.Equal(t, 5, response.Data[0].Month)
}

func TestStatsHandler_MonthlyStats_InvalidYear(t *testing.T) {
	mockService := new(MockStatsQueryService)

	for _, year := range []string{"abc", "1999", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/stats/monthly?year="+year, nil)
		rr := httptest.NewRecorder()
		newStatsRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "year=%s", year)
	}
	mockService.AssertNotCalled(t, "MonthlyStats")
}
