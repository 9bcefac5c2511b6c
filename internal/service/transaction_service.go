package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// TransactionService handles transaction business logic. Writes go through
// the operator so a transaction and its balance delta commit together.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
	users    *UserService
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op actionProcessor, users *UserService) *TransactionService {
	return &TransactionService{storage: store, operator: op, users: users, now: time.Now}
}

func parseRecurrencePeriod(name string) (transaction.RecurrencePeriod, error) {
	period := transaction.RecurrencePeriod(name)
	if !period.Valid() {
		return "", errs.Validation("recurrence period %q is not one of daily, weekly, biweekly, monthly, quarterly, yearly", name)
	}
	return period, nil
}

func parseCategoryType(name string) (*category.TypeName, error) {
	if name == "" {
		return nil, nil
	}
	typeName := category.TypeName(strings.ToUpper(name))
	if !typeName.Valid() {
		return nil, errs.Validation("type %q is not one of GASTO, INGRESO", name)
	}
	return &typeName, nil
}

// Create records a transaction for the user and posts its amount to the
// account, both in one storage transaction.
func (s *TransactionService) Create(ctx context.Context, userID int64, input TransactionInput) (*transaction.Transaction, error) {
	if err := validateMoney("amount", input.Amount, transaction.MinAmount, transaction.MaxAmount); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	var period *transaction.RecurrencePeriod
	if input.RecurrencePeriod != "" {
		p, err := parseRecurrencePeriod(input.RecurrencePeriod)
		if err != nil {
			return nil, err
		}
		period = &p
	}

	if _, err := s.users.FindOne(ctx, userID); err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Create: transaction.TransactionCreate{
		UserID:           userID,
		AccountID:        input.AccountID,
		SubcategoryID:    input.SubcategoryID,
		Amount:           input.Amount,
		Date:             transaction.DateOnly(input.Date),
		Description:      input.Description,
		Notes:            input.Notes,
		Tags:             input.Tags,
		IsRecurring:      input.IsRecurring,
		RecurrencePeriod: period,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// FindOne returns the user's transaction with its relations.
func (s *TransactionService) FindOne(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return s.storage.Reader.Transactions.FindOwned(ctx, id, userID)
}

// FindAll resolves the query defaults and returns one page plus the total
// number of matches.
func (s *TransactionService) FindAll(ctx context.Context, userID int64, query TransactionQuery) (*TransactionPage, error) {
	filter, err := s.buildFilter(userID, query)
	if err != nil {
		return nil, err
	}
	page := filter.Offset/filter.Limit + 1

	logData := logging.GetLogData(ctx)
	defer logData.AddTiming("findAllTransactions")()

	var (
		rows  []*transaction.Transaction
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.storage.Reader.Transactions.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.storage.Reader.Transactions.Count(gctx, filter)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []*transaction.Transaction{}
	}
	return &TransactionPage{Data: rows, Total: total, Page: page, Limit: filter.Limit}, nil
}

func (s *TransactionService) buildFilter(userID int64, query TransactionQuery) (*transaction.TransactionFilter, error) {
	filter := &transaction.TransactionFilter{
		UserID:        userID,
		SubcategoryID: query.SubcategoryID,
		CategoryID:    query.CategoryID,
		AccountID:     query.AccountID,
		IsRecurring:   query.IsRecurring,
		Search:        query.Search,
	}

	switch {
	case query.StartDate != nil && query.EndDate != nil:
		start, end := transaction.DateOnly(*query.StartDate), transaction.DateOnly(*query.EndDate)
		filter.StartDate, filter.EndDate = &start, &end
	case query.StartDate != nil:
		start, end := transaction.DateOnly(*query.StartDate), transaction.DateOnly(s.now())
		filter.StartDate, filter.EndDate = &start, &end
	case query.EndDate != nil:
		start, end := epoch, transaction.DateOnly(*query.EndDate)
		filter.StartDate, filter.EndDate = &start, &end
	}

	if query.MinAmount != nil || query.MaxAmount != nil {
		minAmount, maxAmount := transaction.MinAmount, transaction.MaxAmount
		if query.MinAmount != nil {
			minAmount = *query.MinAmount
		}
		if query.MaxAmount != nil {
			maxAmount = *query.MaxAmount
		}
		filter.MinAmount, filter.MaxAmount = &minAmount, &maxAmount
	}

	typeName, err := parseCategoryType(query.Type)
	if err != nil {
		return nil, err
	}
	filter.Type = typeName

	if query.RecurrencePeriod != "" {
		period, err := parseRecurrencePeriod(query.RecurrencePeriod)
		if err != nil {
			return nil, err
		}
		filter.RecurrencePeriod = &period
	}

	for _, tag := range query.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tag = tag
			break
		}
	}

	filter.SortField = transaction.SortByDate
	if query.SortBy != "" {
		field, ok := transaction.ParseSortField(query.SortBy)
		if !ok {
			return nil, errs.Validation("sort_by %q is not one of date, amount, description, created_at, updated_at, id", query.SortBy)
		}
		filter.SortField = field
	}
	filter.SortOrder = transaction.SortDesc
	if query.SortOrder != "" {
		order, ok := transaction.ParseSortOrder(query.SortOrder)
		if !ok {
			return nil, errs.Validation("sort_order %q is not one of ASC, DESC", query.SortOrder)
		}
		filter.SortOrder = order
	}

	page, limit := query.Page, query.Limit
	if page < 0 || limit < 0 {
		return nil, errs.Validation("page and limit must be positive")
	}
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		return nil, errs.Validation("limit must be at most %d", maxLimit)
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	return filter, nil
}

// Update applies the patch and moves the balance difference between the
// accounts involved.
func (s *TransactionService) Update(ctx context.Context, id int64, userID int64, patch TransactionPatch) (*transaction.Transaction, error) {
	storagePatch := transaction.TransactionPatch{
		AccountID:     patch.AccountID,
		SubcategoryID: patch.SubcategoryID,
		Date:          patch.Date,
		Description:   patch.Description,
		Notes:         patch.Notes,
		Tags:          patch.Tags,
		IsRecurring:   patch.IsRecurring,
	}
	if amount, ok := patch.Amount.Get(); ok {
		if err := validateMoney("amount", amount, transaction.MinAmount, transaction.MaxAmount); err != nil {
			return nil, err
		}
		storagePatch.Amount = omit.From(amount)
	}
	if description, ok := patch.Description.Get(); ok {
		if err := validateDescription(description); err != nil {
			return nil, err
		}
	}
	if patch.RecurrencePeriod.IsNull() {
		storagePatch.RecurrencePeriod = omitnull.FromPtr[transaction.RecurrencePeriod](nil)
	} else if name, ok := patch.RecurrencePeriod.Get(); ok {
		period, err := parseRecurrencePeriod(name)
		if err != nil {
			return nil, err
		}
		storagePatch.RecurrencePeriod = omitnull.From(period)
	}

	action := &actions.UpdateTransaction{TransactionID: id, UserID: userID, Patch: storagePatch}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// Remove deletes the transaction and reverses its amount on the account.
// The removed transaction is returned.
func (s *TransactionService) Remove(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	action := &actions.RemoveTransaction{TransactionID: id, UserID: userID}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}
