package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" maxLength:"100" doc:"Account name"`
	Type           string `json:"type,omitempty" enum:"bank_account,cash,credit_card,savings" doc:"Account type, defaults to bank_account"`
	CurrentBalance string `json:"current_balance,omitempty" doc:"Opening balance (e.g. '1234.56'), defaults to 0"`
	Currency       string `json:"currency,omitempty" minLength:"3" maxLength:"3" doc:"Currency code, defaults to ARS"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	apiutil.UserHeader
	Body CreateAccountBody
}

// CreateAccountHandler handles POST /v1/accounts.
type CreateAccountHandler struct {
	AccountService accountService
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountService) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/accounts",
		Summary:       "Create an account",
		Description:   "Creates an active account for the acting user with an opening balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountInput, error) {
	balance := decimal.Zero
	if input.Body.CurrentBalance != "" {
		var err error
		if balance, err = apiutil.ParseAmount("current_balance", input.Body.CurrentBalance); err != nil {
			return service.AccountInput{}, err
		}
	}
	return service.AccountInput{
		Name:           input.Body.Name,
		Type:           input.Body.Type,
		CurrentBalance: balance,
		Currency:       input.Body.Currency,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	logData := logging.GetLogData(ctx)

	accountInput, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createAccountMs")
	acc, err := h.AccountService.Create(ctx, input.UserID, accountInput)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to create account")
	}

	logData.AddData("accountID", acc.ID)
	return &AccountOutput{Status: http.StatusCreated, Body: toAccount(acc)}, nil
}
