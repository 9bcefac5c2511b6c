package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/service"
)

// GetTransactionHandler handles GET /v1/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionService
}

func NewGetTransactionHandler(svc transactionService) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionPathInput) (*TransactionOutput, error) {
	tx, err := h.TransactionService.FindOne(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to get transaction")
	}
	return &TransactionOutput{Status: http.StatusOK, Body: toTransaction(tx)}, nil
}

// UpdateTransactionBody lists the editable fields. Omitted fields are
// unchanged; an empty recurrence_period clears it.
type UpdateTransactionBody struct {
	AccountID        *int64  `json:"account_id,omitempty" minimum:"1" doc:"Move the transaction to this account"`
	SubcategoryID    *int64  `json:"subcategory_id,omitempty" minimum:"1" doc:"Subcategory id"`
	Amount           *string `json:"amount,omitempty" doc:"Signed decimal amount"`
	Date             *string `json:"date,omitempty" doc:"Calendar date YYYY-MM-DD"`
	Description      *string `json:"description,omitempty" maxLength:"255" doc:"Description"`
	Notes            *string `json:"notes,omitempty" doc:"Free-form notes"`
	Tags             *string `json:"tags,omitempty" doc:"Comma-separated tags"`
	IsRecurring      *bool   `json:"is_recurring,omitempty" doc:"Recurring flag"`
	RecurrencePeriod *string `json:"recurrence_period,omitempty" enum:",daily,weekly,biweekly,monthly,quarterly,yearly" doc:"Recurrence period, empty to clear"`
}

type UpdateTransactionInput struct {
	TransactionPathInput
	Body UpdateTransactionBody
}

// UpdateTransactionHandler handles PATCH /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionService
}

func NewUpdateTransactionHandler(svc transactionService) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Applies a partial update and moves the balance difference between the accounts involved.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionBody(body UpdateTransactionBody) (service.TransactionPatch, error) {
	patch := service.TransactionPatch{
		AccountID:     omit.FromPtr(body.AccountID),
		SubcategoryID: omit.FromPtr(body.SubcategoryID),
		Description:   omit.FromPtr(body.Description),
		Notes:         omit.FromPtr(body.Notes),
		Tags:          omit.FromPtr(body.Tags),
		IsRecurring:   omit.FromPtr(body.IsRecurring),
	}
	if body.Amount != nil {
		amount, err := apiutil.ParseAmount("amount", *body.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = omit.From(amount)
	}
	if body.Date != nil {
		date, err := apiutil.ParseDate("date", *body.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = omit.From(date)
	}
	if body.RecurrencePeriod != nil {
		if *body.RecurrencePeriod == "" {
			patch.RecurrencePeriod = omitnull.FromPtr[string](nil)
		} else {
			patch.RecurrencePeriod = omitnull.From(*body.RecurrencePeriod)
		}
	}
	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	patch, err := parseUpdateTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.Update(ctx, input.ID, input.UserID, patch)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to update transaction")
	}
	return &TransactionOutput{Status: http.StatusOK, Body: toTransaction(tx)}, nil
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionService
}

func NewDeleteTransactionHandler(svc transactionService) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transactions/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes the transaction, reverses its amount on the account and returns the deleted record.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionPathInput) (*TransactionOutput, error) {
	tx, err := h.TransactionService.Remove(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to delete transaction")
	}
	return &TransactionOutput{Status: http.StatusOK, Body: toTransaction(tx)}, nil
}
