package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// SummaryQuery is a category summary request. Missing bounds default to the
// first and last day of the current month.
type SummaryQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

// MonthlySummary is one month of a yearly summary.
type MonthlySummary struct {
	Month            int
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

// SummaryService computes grouped totals over a user's transactions.
type SummaryService struct {
	storage *storage.Storage
	now     func() time.Time
}

func NewSummaryService(store *storage.Storage) *SummaryService {
	return &SummaryService{storage: store, now: time.Now}
}

// ByCategory totals the window per category. Expense summaries list the
// largest total first; anything else lists the smallest first.
func (s *SummaryService) ByCategory(ctx context.Context, userID int64, query SummaryQuery) ([]*transaction.CategorySummary, error) {
	typeName, err := parseCategoryType(query.Type)
	if err != nil {
		return nil, err
	}

	today := transaction.DateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	start, end := monthStart, monthStart.AddDate(0, 1, -1)
	if query.StartDate != nil {
		start = transaction.DateOnly(*query.StartDate)
	}
	if query.EndDate != nil {
		end = transaction.DateOnly(*query.EndDate)
	}

	summaries, err := s.storage.Reader.Transactions.SummaryByCategory(ctx, &transaction.CategorySummaryQuery{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Type:      typeName,
	})
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []*transaction.CategorySummary{}
	}
	return summaries, nil
}

// Monthly returns twelve entries for the year, zero-filled where a month has
// no transactions. A zero year means the current year.
func (s *SummaryService) Monthly(ctx context.Context, userID int64, year int, typeFilter string) ([]MonthlySummary, error) {
	typeName, err := parseCategoryType(typeFilter)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}

	totals, err := s.storage.Reader.Transactions.MonthlyTotals(ctx, &transaction.MonthlySummaryQuery{
		UserID: userID,
		Year:   year,
		Type:   typeName,
	})
	if err != nil {
		return nil, err
	}

	months := make([]MonthlySummary, 12)
	for i := range months {
		months[i] = MonthlySummary{Month: i + 1, TotalAmount: decimal.Zero}
	}
	for _, total := range totals {
		if total.Month < 1 || total.Month > 12 {
			continue
		}
		months[total.Month-1] = MonthlySummary{
			Month:            total.Month,
			TotalAmount:      total.TotalAmount,
			TransactionCount: total.TransactionCount,
		}
	}
	return months, nil
}
