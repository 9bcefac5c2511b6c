package service

import (
	"context"
	"sort"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator actionProcessor
	users    *UserService
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op actionProcessor, users *UserService) *AccountService {
	return &AccountService{storage: store, operator: op, users: users}
}

func parseAccountType(name string) (account.AccountType, error) {
	accountType, ok := account.ParseAccountType(name)
	if !ok {
		return 0, errs.Validation("account type %q is not one of bank_account, cash, credit_card, savings", name)
	}
	return accountType, nil
}

// Create validates the input and creates an active account for the user.
func (s *AccountService) Create(ctx context.Context, userID int64, input AccountInput) (*account.Account, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	typeName := input.Type
	if typeName == "" {
		typeName = defaultAccountType
	}
	accountType, err := parseAccountType(typeName)
	if err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	if err = validateCurrency(currency); err != nil {
		return nil, err
	}
	if err = validateMoney("current_balance", input.CurrentBalance, minAccountBalance, maxAccountBalance); err != nil {
		return nil, err
	}

	if _, err = s.users.FindOne(ctx, userID); err != nil {
		return nil, err
	}

	action := &actions.CreateAccount{Create: account.AccountCreate{
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		CurrentBalance: input.CurrentBalance,
		Currency:       currency,
	}}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// FindOne returns the user's account regardless of status.
func (s *AccountService) FindOne(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return s.storage.Reader.Accounts.FindOwned(ctx, id, userID)
}

// ListAll returns every account of the user, newest first.
func (s *AccountService) ListAll(ctx context.Context, userID int64) ([]*account.Account, error) {
	return s.storage.Reader.Accounts.List(ctx, &account.AccountFilter{
		UserID:          userID,
		IncludeInactive: true,
		Order:           account.OrderByNewest,
	})
}

// ListActive returns the user's active accounts by name.
func (s *AccountService) ListActive(ctx context.Context, userID int64) ([]*account.Account, error) {
	return s.storage.Reader.Accounts.List(ctx, &account.AccountFilter{
		UserID: userID,
		Order:  account.OrderByName,
	})
}

// TotalBalance sums the user's active accounts, overall and per currency.
func (s *AccountService) TotalBalance(ctx context.Context, userID int64) (*BalanceSummary, error) {
	accounts, err := s.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &BalanceSummary{Total: decimal.Zero, AccountCount: len(accounts)}
	byCurrency := map[string]*CurrencyBalance{}
	for _, acc := range accounts {
		summary.Total = summary.Total.Add(acc.CurrentBalance)
		entry, ok := byCurrency[acc.Currency]
		if !ok {
			entry = &CurrencyBalance{Currency: acc.Currency, Total: decimal.Zero}
			byCurrency[acc.Currency] = entry
		}
		entry.Total = entry.Total.Add(acc.CurrentBalance)
		entry.AccountCount++
	}

	summary.ByCurrency = make([]CurrencyBalance, 0, len(byCurrency))
	for _, entry := range byCurrency {
		summary.ByCurrency = append(summary.ByCurrency, *entry)
	}
	sort.Slice(summary.ByCurrency, func(i, j int) bool {
		return summary.ByCurrency[i].Currency < summary.ByCurrency[j].Currency
	})
	return summary, nil
}

// Update changes name, type or currency.
func (s *AccountService) Update(ctx context.Context, id int64, userID int64, patch AccountPatch) (*account.Account, error) {
	update := account.AccountUpdate{}
	if name, ok := patch.Name.Get(); ok {
		validName, err := validateName(name)
		if err != nil {
			return nil, err
		}
		update.Name = omit.From(validName)
	}
	if typeName, ok := patch.Type.Get(); ok {
		accountType, err := parseAccountType(typeName)
		if err != nil {
			return nil, err
		}
		update.Type = omit.From(accountType)
	}
	if currency, ok := patch.Currency.Get(); ok {
		if err := validateCurrency(currency); err != nil {
			return nil, err
		}
		update.Currency = omit.From(currency)
	}

	action := &actions.UpdateAccount{AccountID: id, UserID: userID, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *AccountService) Deactivate(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return s.setStatus(ctx, id, userID, status.Inactive)
}

func (s *AccountService) Activate(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return s.setStatus(ctx, id, userID, status.Active)
}

func (s *AccountService) setStatus(ctx context.Context, id int64, userID int64, st status.Status) (*account.Account, error) {
	action := &actions.SetAccountStatus{AccountID: id, UserID: userID, Status: st}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// Remove hard-deletes an account. Accounts with transactions are refused
// with errs.ErrConflict.
func (s *AccountService) Remove(ctx context.Context, id int64, userID int64) error {
	return s.operator.Process(ctx, &actions.DeleteAccount{AccountID: id, UserID: userID})
}
