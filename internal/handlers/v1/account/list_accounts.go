package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

// ListAccountsInput is the Huma input for both account listings.
type ListAccountsInput struct {
	apiutil.UserHeader
}

// ListAccountsOutput is the Huma output for both account listings.
type ListAccountsOutput struct {
	Body []Account
}

// ListAccountsHandler handles GET /v1/accounts and GET /v1/accounts/active.
type ListAccountsHandler struct {
	AccountService accountService
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountService) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the account listing endpoints with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every account of the acting user, inactive included, newest first.",
		Tags:        []string{"Accounts"},
	}, h.handleAll)

	huma.Register(api, huma.Operation{
		OperationID: "list-active-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/active",
		Summary:     "List active accounts",
		Description: "Returns the acting user's active accounts ordered by name.",
		Tags:        []string{"Accounts"},
	}, h.handleActive)
}

func (h *ListAccountsHandler) handleAll(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	return h.list(ctx, "listAccountsMs", func() ([]*account.Account, error) {
		return h.AccountService.ListAll(ctx, input.UserID)
	})
}

func (h *ListAccountsHandler) handleActive(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	return h.list(ctx, "listActiveAccountsMs", func() ([]*account.Account, error) {
		return h.AccountService.ListActive(ctx, input.UserID)
	})
}

func (h *ListAccountsHandler) list(ctx context.Context, timing string, fetch func() ([]*account.Account, error)) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming(timing)
	accounts, err := fetch()
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list accounts")
	}

	logData.AddData("accountCount", len(accounts))
	return &ListAccountsOutput{Body: toAccounts(accounts)}, nil
}

// CurrencyBalance is one currency of a balance summary.
type CurrencyBalance struct {
	Currency     string `json:"currency" doc:"Currency code"`
	Total        string `json:"total" doc:"Sum of active balances in this currency"`
	AccountCount int    `json:"account_count" doc:"Active accounts in this currency"`
}

// BalanceSummary is the response body of GET /v1/accounts/balance.
type BalanceSummary struct {
	Total        string            `json:"total" doc:"Sum of all active balances, not converted between currencies"`
	AccountCount int               `json:"account_count" doc:"Number of active accounts"`
	ByCurrency   []CurrencyBalance `json:"by_currency" doc:"Per-currency breakdown"`
}

// TotalBalanceOutput is the Huma output for the balance summary.
type TotalBalanceOutput struct {
	Body BalanceSummary
}

// TotalBalanceHandler handles GET /v1/accounts/balance.
type TotalBalanceHandler struct {
	AccountService accountService
}

func NewTotalBalanceHandler(svc accountService) *TotalBalanceHandler {
	return &TotalBalanceHandler{AccountService: svc}
}

func (h *TotalBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "total-balance",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/balance",
		Summary:     "Total balance",
		Description: "Sums the balances of the acting user's active accounts.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *TotalBalanceHandler) handle(ctx context.Context, input *ListAccountsInput) (*TotalBalanceOutput, error) {
	summary, err := h.AccountService.TotalBalance(ctx, input.UserID)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to compute total balance")
	}

	body := BalanceSummary{
		Total:        apiutil.FormatAmount(summary.Total),
		AccountCount: summary.AccountCount,
		ByCurrency:   make([]CurrencyBalance, len(summary.ByCurrency)),
	}
	for i, c := range summary.ByCurrency {
		body.ByCurrency[i] = CurrencyBalance{
			Currency:     c.Currency,
			Total:        apiutil.FormatAmount(c.Total),
			AccountCount: c.AccountCount,
		}
	}
	return &TotalBalanceOutput{Body: body}, nil
}
