package account

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

// Account represents an account record.
type Account struct {
	ID             int64
	UserID         int64
	Name           string
	Type           AccountType
	CurrentBalance decimal.Decimal
	Currency       string
	Status         status.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountOrder selects the ordering of an account listing.
type AccountOrder int8

const (
	// OrderByName lists accounts by name ascending.
	OrderByName AccountOrder = iota
	// OrderByNewest lists accounts by creation time descending.
	OrderByNewest
)

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	UserID          int64
	IncludeInactive bool
	Order           AccountOrder
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID         int64
	Name           string
	Type           AccountType
	CurrentBalance decimal.Decimal
	Currency       string
}

// AccountUpdate carries the patchable fields of an account. The balance is
// deliberately absent: it only moves through ApplyDelta.
type AccountUpdate struct {
	Name     omit.Val[string]
	Type     omit.Val[AccountType]
	Currency omit.Val[string]
}

// IAccountReader defines the read operations on accounts.
type IAccountReader interface {
	FindOwned(ctx context.Context, id int64, userID int64) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

// IAccountWriter defines the account operations available inside a storage transaction.
type IAccountWriter interface {
	IAccountReader
	// FindOwnedForUpdate loads the account and locks it until the transaction ends.
	FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id int64, userID int64, update *AccountUpdate) (*Account, error)
	SetStatus(ctx context.Context, id int64, userID int64, s status.Status) (*Account, error)
	Delete(ctx context.Context, id int64, userID int64) error
	// ApplyDelta adds a signed amount to the current balance. It is the only
	// way the balance changes after creation.
	ApplyDelta(ctx context.Context, id int64, userID int64, delta decimal.Decimal) (*Account, error)
}

type AccountType int8

const (
	AccountTypeBankAccount AccountType = iota
	AccountTypeCash
	AccountTypeCreditCard
	AccountTypeSavings
)

var accountTypeNames = map[AccountType]string{
	AccountTypeBankAccount: "bank_account",
	AccountTypeCash:        "cash",
	AccountTypeCreditCard:  "credit_card",
	AccountTypeSavings:     "savings",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AccountType(%d)", int8(t))
}

func (t AccountType) Valid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

// ParseAccountType maps an API name such as "credit_card" to an AccountType.
func ParseAccountType(name string) (AccountType, bool) {
	for t, n := range accountTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
