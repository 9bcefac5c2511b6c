package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

var (
	// MinAmount and MaxAmount bound a single transaction amount. They are also
	// the implicit ends of an open amount range filter.
	MinAmount = decimal.RequireFromString("-9999999.99")
	MaxAmount = decimal.RequireFromString("9999999.99")
)

// Transaction represents a transaction record. FindOwned and List attach
// Subcategory (with its category and type) and Account.
type Transaction struct {
	ID               int64
	UserID           int64
	AccountID        int64
	SubcategoryID    int64
	Amount           decimal.Decimal
	Date             time.Time
	Description      string
	Notes            string
	Tags             string
	IsRecurring      bool
	RecurrencePeriod *RecurrencePeriod
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Subcategory *category.Subcategory
	Account     *account.Account
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID           int64
	AccountID        int64
	SubcategoryID    int64
	Amount           decimal.Decimal
	Date             time.Time
	Description      string
	Notes            string
	Tags             string
	IsRecurring      bool
	RecurrencePeriod *RecurrencePeriod
}

// TransactionPatch carries the fields of a partial update. Unset fields keep
// their stored value; RecurrencePeriod may also be set to null to clear it.
type TransactionPatch struct {
	AccountID        omit.Val[int64]
	SubcategoryID    omit.Val[int64]
	Amount           omit.Val[decimal.Decimal]
	Date             omit.Val[time.Time]
	Description      omit.Val[string]
	Notes            omit.Val[string]
	Tags             omit.Val[string]
	IsRecurring      omit.Val[bool]
	RecurrencePeriod omitnull.Val[RecurrencePeriod]
}

// Apply merges the set fields of p into t.
func (p *TransactionPatch) Apply(t *Transaction) {
	if v, ok := p.AccountID.Get(); ok {
		t.AccountID = v
	}
	if v, ok := p.SubcategoryID.Get(); ok {
		t.SubcategoryID = v
	}
	if v, ok := p.Amount.Get(); ok {
		t.Amount = v
	}
	if v, ok := p.Date.Get(); ok {
		t.Date = DateOnly(v)
	}
	if v, ok := p.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := p.Notes.Get(); ok {
		t.Notes = v
	}
	if v, ok := p.Tags.Get(); ok {
		t.Tags = v
	}
	if v, ok := p.IsRecurring.Get(); ok {
		t.IsRecurring = v
	}
	if p.RecurrencePeriod.IsNull() {
		t.RecurrencePeriod = nil
	} else if v, ok := p.RecurrencePeriod.Get(); ok {
		t.RecurrencePeriod = &v
	}
}

// TransactionFilter is a fully resolved listing query. Nil fields do not
// constrain the result.
type TransactionFilter struct {
	UserID           int64
	StartDate        *time.Time
	EndDate          *time.Time
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	SubcategoryID    *int64
	CategoryID       *int64
	AccountID        *int64
	Type             *category.TypeName
	IsRecurring      *bool
	RecurrencePeriod *RecurrencePeriod
	// Search is matched as a substring of the description only.
	Search string
	// Tag is matched as a substring of the tags column.
	Tag       string
	SortField SortField
	SortOrder SortOrder
	Limit     int
	Offset    int
}

// CategorySummaryQuery asks for totals per category within an inclusive window.
type CategorySummaryQuery struct {
	UserID    int64
	StartDate time.Time
	EndDate   time.Time
	Type      *category.TypeName
}

// Descending reports whether totals are ordered largest first. Only expense
// queries are.
func (q *CategorySummaryQuery) Descending() bool {
	return q.Type != nil && *q.Type == category.TypeExpense
}

type CategorySummary struct {
	CategoryID       int64
	CategoryName     string
	CategoryIcon     string
	CategoryColor    string
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

// MonthlySummaryQuery asks for totals per calendar month of one year.
type MonthlySummaryQuery struct {
	UserID int64
	Year   int
	Type   *category.TypeName
}

// MonthlyTotal is one month of a MonthlyTotals result. Months without
// transactions are absent from the storage result.
type MonthlyTotal struct {
	Month            int
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

// ITransactionReader defines the read operations on transactions.
type ITransactionReader interface {
	FindOwned(ctx context.Context, id int64, userID int64) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Count(ctx context.Context, filter *TransactionFilter) (int, error)
	SummaryByCategory(ctx context.Context, query *CategorySummaryQuery) ([]*CategorySummary, error)
	MonthlyTotals(ctx context.Context, query *MonthlySummaryQuery) ([]*MonthlyTotal, error)
}

// ITransactionWriter defines the transaction operations available inside a
// storage transaction.
type ITransactionWriter interface {
	ITransactionReader
	// FindOwnedForUpdate loads the transaction and locks its row until the
	// storage transaction ends.
	FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	// Update persists every mutable column of tx and returns the reloaded row.
	Update(ctx context.Context, tx *Transaction) (*Transaction, error)
	Delete(ctx context.Context, id int64, userID int64) error
	CountByAccount(ctx context.Context, accountID int64, userID int64) (int, error)
}

type RecurrencePeriod string

const (
	RecurrenceDaily     RecurrencePeriod = "daily"
	RecurrenceWeekly    RecurrencePeriod = "weekly"
	RecurrenceBiweekly  RecurrencePeriod = "biweekly"
	RecurrenceMonthly   RecurrencePeriod = "monthly"
	RecurrenceQuarterly RecurrencePeriod = "quarterly"
	RecurrenceYearly    RecurrencePeriod = "yearly"
)

func (p RecurrencePeriod) Valid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

// SortField is a column a listing may be ordered by.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCreatedAt   SortField = "created_at"
	SortByUpdatedAt   SortField = "updated_at"
	SortByID          SortField = "id"
)

// ParseSortField accepts only the sortable columns; anything else is rejected
// rather than passed through to the query.
func ParseSortField(name string) (SortField, bool) {
	switch f := SortField(name); f {
	case SortByDate, SortByAmount, SortByDescription, SortByCreatedAt, SortByUpdatedAt, SortByID:
		return f, true
	}
	return "", false
}

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func ParseSortOrder(name string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToUpper(name)); o {
	case SortAsc, SortDesc:
		return o, true
	}
	return "", false
}

// EscapeLike escapes LIKE wildcards so the needle matches literally.
func EscapeLike(needle string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(needle)
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
