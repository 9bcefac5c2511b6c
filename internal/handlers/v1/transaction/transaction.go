package transaction

import (
	"context"
	"time"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apiutil"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// SubcategoryRef is the classification embedded in a transaction response.
type SubcategoryRef struct {
	ID            int64  `json:"id" doc:"Subcategory id"`
	Name          string `json:"name" doc:"Subcategory name"`
	CategoryID    int64  `json:"category_id" doc:"Parent category id"`
	CategoryName  string `json:"category_name" doc:"Parent category name"`
	CategoryIcon  string `json:"category_icon" doc:"Parent category icon"`
	CategoryColor string `json:"category_color" doc:"Parent category color"`
	Type          string `json:"type" enum:"GASTO,INGRESO" doc:"Category type"`
}

// AccountRef is the account summary embedded in a transaction response.
type AccountRef struct {
	ID       int64  `json:"id" doc:"Account id"`
	Name     string `json:"name" doc:"Account name"`
	Currency string `json:"currency" doc:"Currency code"`
}

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID               int64           `json:"id" doc:"Transaction id"`
	AccountID        int64           `json:"account_id" doc:"Account id"`
	SubcategoryID    int64           `json:"subcategory_id" doc:"Subcategory id"`
	Amount           string          `json:"amount" doc:"Signed decimal amount, negative for outflows"`
	Date             string          `json:"date" format:"date" doc:"Calendar date YYYY-MM-DD"`
	Description      string          `json:"description" doc:"Description"`
	Notes            string          `json:"notes" doc:"Free-form notes"`
	Tags             string          `json:"tags" doc:"Comma-separated tags"`
	IsRecurring      bool            `json:"is_recurring" doc:"Recurring flag"`
	RecurrencePeriod *string         `json:"recurrence_period" doc:"Recurrence period, null when not set"`
	Subcategory      *SubcategoryRef `json:"subcategory,omitempty" doc:"Classification"`
	Account          *AccountRef     `json:"account,omitempty" doc:"Account"`
	CreatedAt        string          `json:"created_at" format:"date-time" doc:"Creation time"`
	UpdatedAt        string          `json:"updated_at" format:"date-time" doc:"Last update time"`
}

func toTransaction(t *transaction.Transaction) Transaction {
	result := Transaction{
		ID:            t.ID,
		AccountID:     t.AccountID,
		SubcategoryID: t.SubcategoryID,
		Amount:        apiutil.FormatAmount(t.Amount),
		Date:          apiutil.FormatDate(t.Date),
		Description:   t.Description,
		Notes:         t.Notes,
		Tags:          t.Tags,
		IsRecurring:   t.IsRecurring,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.RecurrencePeriod != nil {
		period := string(*t.RecurrencePeriod)
		result.RecurrencePeriod = &period
	}
	if sub := t.Subcategory; sub != nil {
		result.Subcategory = &SubcategoryRef{ID: sub.ID, Name: sub.Name, CategoryID: sub.CategoryID}
		if c := sub.Category; c != nil {
			result.Subcategory.CategoryName = c.Name
			result.Subcategory.CategoryIcon = c.Icon
			result.Subcategory.CategoryColor = c.Color
			if c.Type != nil {
				result.Subcategory.Type = string(c.Type.Name)
			}
		}
	}
	if acc := t.Account; acc != nil {
		result.Account = &AccountRef{ID: acc.ID, Name: acc.Name, Currency: acc.Currency}
	}
	return result
}

// TransactionOutput wraps a single transaction.
type TransactionOutput struct {
	Status int
	Body   Transaction
}

// TransactionPathInput addresses one transaction of the acting user.
type TransactionPathInput struct {
	apiutil.UserHeader
	ID int64 `path:"id" minimum:"1" doc:"Transaction id"`
}

// transactionService is the slice of service.TransactionService the handlers use.
type transactionService interface {
	Create(ctx context.Context, userID int64, input service.TransactionInput) (*transaction.Transaction, error)
	FindOne(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error)
	FindAll(ctx context.Context, userID int64, query service.TransactionQuery) (*service.TransactionPage, error)
	Update(ctx context.Context, id int64, userID int64, patch service.TransactionPatch) (*transaction.Transaction, error)
	Remove(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error)
}
