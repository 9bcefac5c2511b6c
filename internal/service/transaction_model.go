package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// TransactionInput is the create request for a transaction.
type TransactionInput struct {
	AccountID        int64
	SubcategoryID    int64
	Amount           decimal.Decimal
	Date             time.Time
	Description      string
	Notes            string
	Tags             string
	IsRecurring      bool
	RecurrencePeriod string
}

// TransactionPatch is a partial update. A null RecurrencePeriod clears it.
type TransactionPatch struct {
	AccountID        omit.Val[int64]
	SubcategoryID    omit.Val[int64]
	Amount           omit.Val[decimal.Decimal]
	Date             omit.Val[time.Time]
	Description      omit.Val[string]
	Notes            omit.Val[string]
	Tags             omit.Val[string]
	IsRecurring      omit.Val[bool]
	RecurrencePeriod omitnull.Val[string]
}

// TransactionQuery is the listing request before defaults are applied. Nil
// and empty fields do not filter.
type TransactionQuery struct {
	StartDate        *time.Time
	EndDate          *time.Time
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	SubcategoryID    *int64
	CategoryID       *int64
	AccountID        *int64
	Type             string
	IsRecurring      *bool
	RecurrencePeriod string
	Search           string
	// Only the first non-empty tag is matched.
	Tags      []string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// TransactionPage is one page of a listing plus the unpaginated total.
type TransactionPage struct {
	Data  []*transaction.Transaction
	Total int
	Page  int
	Limit int
}

// epoch is the implicit start of a date range given only an end.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
