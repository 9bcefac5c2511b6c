package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions. Every
// filter is optional and filters combine with AND.
type ListTransactionsInput struct {
	apiutil.UserHeader
	StartDate        string   `query:"start_date" doc:"Inclusive start date YYYY-MM-DD; alone it runs to today"`
	EndDate          string   `query:"end_date" doc:"Inclusive end date YYYY-MM-DD; alone it starts at 1970-01-01"`
	MinAmount        string   `query:"min_amount" doc:"Inclusive lower amount bound"`
	MaxAmount        string   `query:"max_amount" doc:"Inclusive upper amount bound"`
	SubcategoryID    int64    `query:"subcategory_id" minimum:"0" doc:"Subcategory id"`
	CategoryID       int64    `query:"category_id" minimum:"0" doc:"Category id"`
	AccountID        int64    `query:"account_id" minimum:"0" doc:"Account id"`
	Type             string   `query:"type" enum:"GASTO,INGRESO,gasto,ingreso" doc:"Category type"`
	IsRecurring      string   `query:"is_recurring" enum:"true,false" doc:"Recurring flag"`
	RecurrencePeriod string   `query:"recurrence_period" enum:"daily,weekly,biweekly,monthly,quarterly,yearly" doc:"Recurrence period"`
	Search           string   `query:"search" doc:"Substring of the description"`
	Tags             []string `query:"tags" doc:"Tags; only the first is matched"`
	SortBy           string   `query:"sort_by" enum:"date,amount,description,created_at,updated_at,id" doc:"Sort field, defaults to date"`
	SortOrder        string   `query:"sort_order" enum:"ASC,DESC,asc,desc" doc:"Sort direction, defaults to DESC"`
	Page             int      `query:"page" minimum:"0" doc:"Page number, defaults to 1"`
	Limit            int      `query:"limit" minimum:"0" maximum:"100" doc:"Page size, defaults to 10"`
}

// ListTransactionsResponseBody is one page plus the total match count.
type ListTransactionsResponseBody struct {
	Data  []Transaction `json:"data" doc:"Page of transactions"`
	Total int           `json:"total" doc:"Number of matches across all pages"`
	Page  int           `json:"page" doc:"Page number"`
	Limit int           `json:"limit" doc:"Page size"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionService
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionService) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns a filtered, sorted page of the acting user's transactions.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionQuery, error) {
	query := service.TransactionQuery{
		SubcategoryID:    apiutil.OptionalID(input.SubcategoryID),
		CategoryID:       apiutil.OptionalID(input.CategoryID),
		AccountID:        apiutil.OptionalID(input.AccountID),
		Type:             input.Type,
		RecurrencePeriod: input.RecurrencePeriod,
		Search:           input.Search,
		Tags:             input.Tags,
		SortBy:           input.SortBy,
		SortOrder:        input.SortOrder,
		Page:             input.Page,
		Limit:            input.Limit,
	}

	var err error
	if query.StartDate, err = apiutil.ParseOptionalDate("start_date", input.StartDate); err != nil {
		return query, err
	}
	if query.EndDate, err = apiutil.ParseOptionalDate("end_date", input.EndDate); err != nil {
		return query, err
	}
	if query.MinAmount, err = apiutil.ParseOptionalAmount("min_amount", input.MinAmount); err != nil {
		return query, err
	}
	if query.MaxAmount, err = apiutil.ParseOptionalAmount("max_amount", input.MaxAmount); err != nil {
		return query, err
	}
	if input.IsRecurring != "" {
		recurring := input.IsRecurring == "true"
		query.IsRecurring = &recurring
	}
	return query, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	query, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	page, err := h.TransactionService.FindAll(ctx, input.UserID, query)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list transactions")
	}

	logData.AddData("transactionCount", len(page.Data))
	logData.AddData("transactionTotal", page.Total)

	body := ListTransactionsResponseBody{
		Data:  make([]Transaction, len(page.Data)),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for i, tx := range page.Data {
		body.Data[i] = toTransaction(tx)
	}
	return &ListTransactionsOutput{Body: body}, nil
}
