package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// summaryService is the slice of service.SummaryService the handlers use.
type summaryService interface {
	ByCategory(ctx context.Context, userID int64, query service.SummaryQuery) ([]*transaction.CategorySummary, error)
	Monthly(ctx context.Context, userID int64, year int, typeFilter string) ([]service.MonthlySummary, error)
}

// CategorySummary is one category of a category summary.
type CategorySummary struct {
	CategoryID       int64  `json:"category_id" doc:"Category id"`
	CategoryName     string `json:"category_name" doc:"Category name"`
	CategoryIcon     string `json:"category_icon" doc:"Category icon"`
	CategoryColor    string `json:"category_color" doc:"Category color"`
	TotalAmount      string `json:"total_amount" doc:"Signed sum of amounts"`
	TransactionCount int64  `json:"transaction_count" doc:"Number of transactions"`
}

type CategorySummaryInput struct {
	apiutil.UserHeader
	StartDate string `query:"start_date" doc:"Inclusive start YYYY-MM-DD, defaults to the first day of the current month"`
	EndDate   string `query:"end_date" doc:"Inclusive end YYYY-MM-DD, defaults to the last day of the current month"`
	Type      string `query:"type" enum:"GASTO,INGRESO,gasto,ingreso" doc:"Category type"`
}

type CategorySummaryOutput struct {
	Body []CategorySummary
}

// CategorySummaryHandler handles GET /v1/transactions/summary/category.
type CategorySummaryHandler struct {
	SummaryService summaryService
}

func NewCategorySummaryHandler(svc summaryService) *CategorySummaryHandler {
	return &CategorySummaryHandler{SummaryService: svc}
}

func (h *CategorySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summary-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/summary/category",
		Summary:     "Summary by category",
		Description: "Totals the acting user's transactions per category over a date window. Expense summaries list the largest total first.",
		Tags:        []string{"Summaries"},
	}, h.handle)
}

func (h *CategorySummaryHandler) handle(ctx context.Context, input *CategorySummaryInput) (*CategorySummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	query := service.SummaryQuery{Type: input.Type}
	var err error
	if query.StartDate, err = apiutil.ParseOptionalDate("start_date", input.StartDate); err != nil {
		return nil, err
	}
	if query.EndDate, err = apiutil.ParseOptionalDate("end_date", input.EndDate); err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("summaryByCategoryMs")
	summaries, err := h.SummaryService.ByCategory(ctx, input.UserID, query)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to summarize by category")
	}

	body := make([]CategorySummary, len(summaries))
	for i, s := range summaries {
		body[i] = CategorySummary{
			CategoryID:       s.CategoryID,
			CategoryName:     s.CategoryName,
			CategoryIcon:     s.CategoryIcon,
			CategoryColor:    s.CategoryColor,
			TotalAmount:      apiutil.FormatAmount(s.TotalAmount),
			TransactionCount: s.TransactionCount,
		}
	}
	return &CategorySummaryOutput{Body: body}, nil
}

// MonthlySummary is one month of a monthly summary.
type MonthlySummary struct {
	Month            int    `json:"month" minimum:"1" maximum:"12" doc:"Month number"`
	TotalAmount      string `json:"total_amount" doc:"Signed sum of amounts"`
	TransactionCount int64  `json:"transaction_count" doc:"Number of transactions"`
}

type MonthlySummaryInput struct {
	apiutil.UserHeader
	Year int    `query:"year" minimum:"0" maximum:"9999" doc:"Calendar year, defaults to the current year"`
	Type string `query:"type" enum:"GASTO,INGRESO,gasto,ingreso" doc:"Category type"`
}

type MonthlySummaryOutput struct {
	Body []MonthlySummary
}

// MonthlySummaryHandler handles GET /v1/transactions/summary/monthly.
type MonthlySummaryHandler struct {
	SummaryService summaryService
}

func NewMonthlySummaryHandler(svc summaryService) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{SummaryService: svc}
}

func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summary-monthly",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/summary/monthly",
		Summary:     "Monthly summary",
		Description: "Returns twelve monthly totals for the year. Months without transactions are zero.",
		Tags:        []string{"Summaries"},
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("summaryMonthlyMs")
	months, err := h.SummaryService.Monthly(ctx, input.UserID, input.Year, input.Type)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to summarize by month")
	}

	body := make([]MonthlySummary, len(months))
	for i, m := range months {
		body[i] = MonthlySummary{
			Month:            m.Month,
			TotalAmount:      apiutil.FormatAmount(m.TotalAmount),
			TransactionCount: m.TransactionCount,
		}
	}
	return &MonthlySummaryOutput{Body: body}, nil
}
