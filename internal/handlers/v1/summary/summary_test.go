package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

const userHeader = "X-User-ID: 1"

type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) ByCategory(ctx context.Context, userID int64, query service.SummaryQuery) ([]*transaction.CategorySummary, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.CategorySummary), args.Error(1)
}

func (m *mockSummaryService) Monthly(ctx context.Context, userID int64, year int, typeFilter string) ([]service.MonthlySummary, error) {
	args := m.Called(ctx, userID, year, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MonthlySummary), args.Error(1)
}

func newTestAPI(t *testing.T, svc summaryService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCategorySummaryHandler(svc).Register(api)
	NewMonthlySummaryHandler(svc).Register(api)
	return api
}

func TestHTTP_CategorySummary(t *testing.T) {
	svc := new(mockSummaryService)
	svc.On("ByCategory", mock.Anything, int64(1), mock.MatchedBy(func(q service.SummaryQuery) bool {
		return q.Type == "GASTO" &&
			q.StartDate != nil && q.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			q.EndDate == nil
	})).Return([]*transaction.CategorySummary{
		{CategoryID: 3, CategoryName: "Transporte", TotalAmount: decimal.RequireFromString("-10"), TransactionCount: 1},
		{CategoryID: 2, CategoryName: "Alimentación", TotalAmount: decimal.RequireFromString("-150"), TransactionCount: 2},
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/transactions/summary/category?type=GASTO&start_date=2025-03-01", userHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []CategorySummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, int64(3), body[0].CategoryID)
	assert.Equal(t, "-150.00", body[1].TotalAmount)
	svc.AssertExpectations(t)
}

func TestHTTP_CategorySummary_BadDate(t *testing.T) {
	svc := new(mockSummaryService)

	resp := newTestAPI(t, svc).Get("/v1/transactions/summary/category?end_date=2025-13-01", userHeader)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_MonthlySummary(t *testing.T) {
	months := make([]service.MonthlySummary, 12)
	for i := range months {
		months[i] = service.MonthlySummary{Month: i + 1, TotalAmount: decimal.Zero}
	}
	months[2] = service.MonthlySummary{Month: 3, TotalAmount: decimal.RequireFromString("-150.25"), TransactionCount: 2}
	svc := new(mockSummaryService)
	svc.On("Monthly", mock.Anything, int64(1), 2024, "").Return(months, nil)

	resp := newTestAPI(t, svc).Get("/v1/transactions/summary/monthly?year=2024", userHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []MonthlySummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 12)
	assert.Equal(t, "0.00", body[0].TotalAmount)
	assert.Equal(t, "-150.25", body[2].TotalAmount)
	assert.EqualValues(t, 2, body[2].TransactionCount)
}

func TestHTTP_MonthlySummary_ServiceValidation(t *testing.T) {
	svc := new(mockSummaryService)
	svc.On("Monthly", mock.Anything, int64(1), 0, "gasto").Return(nil, errs.Validation("bad type"))

	resp := newTestAPI(t, svc).Get("/v1/transactions/summary/monthly?type=gasto", userHeader)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
