package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID        int64  `json:"account_id" minimum:"1" doc:"Account id"`
	SubcategoryID    int64  `json:"subcategory_id" minimum:"1" doc:"Subcategory id"`
	Amount           string `json:"amount" doc:"Signed decimal amount, at most two decimals"`
	Date             string `json:"date,omitempty" doc:"Calendar date YYYY-MM-DD, defaults to today"`
	Description      string `json:"description,omitempty" maxLength:"255" doc:"Description"`
	Notes            string `json:"notes,omitempty" doc:"Free-form notes"`
	Tags             string `json:"tags,omitempty" doc:"Comma-separated tags"`
	IsRecurring      bool   `json:"is_recurring,omitempty" doc:"Recurring flag"`
	RecurrencePeriod string `json:"recurrence_period,omitempty" enum:"daily,weekly,biweekly,monthly,quarterly,yearly" doc:"Recurrence period"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	apiutil.UserHeader
	Body CreateTransactionBody
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionService
	now                func() time.Time
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionService) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, now: time.Now}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Records a transaction and posts its amount to the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput, now time.Time) (service.TransactionInput, error) {
	amount, err := apiutil.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return service.TransactionInput{}, err
	}
	date := now
	if input.Body.Date != "" {
		if date, err = apiutil.ParseDate("date", input.Body.Date); err != nil {
			return service.TransactionInput{}, err
		}
	}
	return service.TransactionInput{
		AccountID:        input.Body.AccountID,
		SubcategoryID:    input.Body.SubcategoryID,
		Amount:           amount,
		Date:             date,
		Description:      input.Body.Description,
		Notes:            input.Body.Notes,
		Tags:             input.Body.Tags,
		IsRecurring:      input.Body.IsRecurring,
		RecurrencePeriod: input.Body.RecurrencePeriod,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	txInput, err := parseCreateTransactionInput(input, h.now())
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createTransactionMs")
	tx, err := h.TransactionService.Create(ctx, input.UserID, txInput)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to create transaction")
	}

	logData.AddData("transactionID", tx.ID)
	return &TransactionOutput{Status: http.StatusCreated, Body: toTransaction(tx)}, nil
}
