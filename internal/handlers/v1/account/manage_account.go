package account

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

// GetAccountHandler handles GET /v1/accounts/{id}.
type GetAccountHandler struct {
	AccountService accountService
}

func NewGetAccountHandler(svc accountService) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	acc, err := h.AccountService.FindOne(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to get account")
	}
	return &AccountOutput{Status: http.StatusOK, Body: toAccount(acc)}, nil
}

// UpdateAccountBody lists the editable fields. Omitted fields are unchanged.
type UpdateAccountBody struct {
	Name     *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"Account name"`
	Type     *string `json:"type,omitempty" enum:"bank_account,cash,credit_card,savings" doc:"Account type"`
	Currency *string `json:"currency,omitempty" minLength:"3" maxLength:"3" doc:"Currency code"`
}

type UpdateAccountInput struct {
	AccountPathInput
	Body UpdateAccountBody
}

// UpdateAccountHandler handles PATCH /v1/accounts/{id}.
type UpdateAccountHandler struct {
	AccountService accountService
}

func NewUpdateAccountHandler(svc accountService) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPatch,
		Path:        "/v1/accounts/{id}",
		Summary:     "Update an account",
		Description: "Changes name, type or currency. The balance only moves through transactions.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	patch := service.AccountPatch{
		Name:     omit.FromPtr(input.Body.Name),
		Type:     omit.FromPtr(input.Body.Type),
		Currency: omit.FromPtr(input.Body.Currency),
	}

	acc, err := h.AccountService.Update(ctx, input.ID, input.UserID, patch)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to update account")
	}
	return &AccountOutput{Status: http.StatusOK, Body: toAccount(acc)}, nil
}

// AccountStatusHandler handles the activate and deactivate endpoints.
type AccountStatusHandler struct {
	AccountService accountService
}

func NewAccountStatusHandler(svc accountService) *AccountStatusHandler {
	return &AccountStatusHandler{AccountService: svc}
}

func (h *AccountStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deactivate-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts/{id}/deactivate",
		Summary:     "Deactivate an account",
		Description: "Hides the account from active listings and the balance summary. Its transactions are kept.",
		Tags:        []string{"Accounts"},
	}, h.handleDeactivate)

	huma.Register(api, huma.Operation{
		OperationID: "activate-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts/{id}/activate",
		Summary:     "Activate an account",
		Tags:        []string{"Accounts"},
	}, h.handleActivate)
}

func (h *AccountStatusHandler) handleDeactivate(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	return h.setStatus(ctx, h.AccountService.Deactivate, input)
}

func (h *AccountStatusHandler) handleActivate(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	return h.setStatus(ctx, h.AccountService.Activate, input)
}

func (h *AccountStatusHandler) setStatus(
	ctx context.Context,
	change func(ctx context.Context, id int64, userID int64) (*account.Account, error),
	input *AccountPathInput,
) (*AccountOutput, error) {
	acc, err := change(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to change account status")
	}
	logging.GetLogData(ctx).AddData("accountStatus", acc.Status.String())
	return &AccountOutput{Status: http.StatusOK, Body: toAccount(acc)}, nil
}

// DeleteAccountHandler handles DELETE /v1/accounts/{id}.
type DeleteAccountHandler struct {
	AccountService accountService
}

func NewDeleteAccountHandler(svc accountService) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/accounts/{id}",
		Summary:       "Delete an account",
		Description:   "Deletes an account without transactions. Accounts with transactions answer 409; deactivate them instead.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountPathInput) (*struct{}, error) {
	if err := h.AccountService.Remove(ctx, input.ID, input.UserID); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to delete account")
	}
	return nil, nil
}
