package account

import (
	"context"
	"time"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID             int64  `json:"id" doc:"Account id"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" enum:"bank_account,cash,credit_card,savings" doc:"Account type"`
	CurrentBalance string `json:"current_balance" doc:"Decimal balance"`
	Currency       string `json:"currency" doc:"ISO currency code"`
	IsActive       bool   `json:"is_active" doc:"False once deactivated"`
	CreatedAt      string `json:"created_at" format:"date-time" doc:"Creation time"`
	UpdatedAt      string `json:"updated_at" format:"date-time" doc:"Last update time"`
}

func toAccount(acc *account.Account) Account {
	return Account{
		ID:             acc.ID,
		Name:           acc.Name,
		Type:           acc.Type.String(),
		CurrentBalance: apiutil.FormatAmount(acc.CurrentBalance),
		Currency:       acc.Currency,
		IsActive:       acc.Status.IsActive(),
		CreatedAt:      acc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      acc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toAccounts(accounts []*account.Account) []Account {
	result := make([]Account, len(accounts))
	for i, acc := range accounts {
		result[i] = toAccount(acc)
	}
	return result
}

// AccountOutput wraps a single account.
type AccountOutput struct {
	Status int
	Body   Account
}

// AccountPathInput addresses one account of the acting user.
type AccountPathInput struct {
	apiutil.UserHeader
	ID int64 `path:"id" minimum:"1" doc:"Account id"`
}

// accountService is the slice of service.AccountService the handlers use.
type accountService interface {
	Create(ctx context.Context, userID int64, input service.AccountInput) (*account.Account, error)
	FindOne(ctx context.Context, id int64, userID int64) (*account.Account, error)
	ListAll(ctx context.Context, userID int64) ([]*account.Account, error)
	ListActive(ctx context.Context, userID int64) ([]*account.Account, error)
	TotalBalance(ctx context.Context, userID int64) (*service.BalanceSummary, error)
	Update(ctx context.Context, id int64, userID int64, patch service.AccountPatch) (*account.Account, error)
	Deactivate(ctx context.Context, id int64, userID int64) (*account.Account, error)
	Activate(ctx context.Context, id int64, userID int64) (*account.Account, error)
	Remove(ctx context.Context, id int64, userID int64) error
}
