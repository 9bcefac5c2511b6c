package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

var _ account.IAccountWriter = (*Accounts)(nil)

// Accounts implements the account reader and writer. The write methods are
// only meaningful on a value obtained from a Tx.
type Accounts struct {
	v   view
	now func() time.Time
}

func (d *dataset) ownedAccount(id int64, userID int64) (*account.Account, error) {
	a, ok := d.accounts[id]
	if !ok || a.UserID != userID {
		return nil, errs.NotFound("account", id)
	}
	return a, nil
}

func copyAccount(a *account.Account) *account.Account {
	cp := *a
	return &cp
}

func (a *Accounts) FindOwned(_ context.Context, id int64, userID int64) (*account.Account, error) {
	var result *account.Account
	err := a.v.with(func(d *dataset) error {
		found, err := d.ownedAccount(id, userID)
		if err != nil {
			return err
		}
		result = copyAccount(found)
		return nil
	})
	return result, err
}

// FindOwnedForUpdate is FindOwned: the enclosing Tx already holds the store lock.
func (a *Accounts) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return a.FindOwned(ctx, id, userID)
}

func (a *Accounts) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	var result []*account.Account
	err := a.v.with(func(d *dataset) error {
		for _, acc := range d.accounts {
			if acc.UserID != filter.UserID {
				continue
			}
			if !filter.IncludeInactive && !acc.Status.IsActive() {
				continue
			}
			result = append(result, copyAccount(acc))
		}
		return nil
	})
	switch filter.Order {
	case account.OrderByNewest:
		sort.Slice(result, func(i, j int) bool {
			if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].ID > result[j].ID
		})
	default:
		sort.Slice(result, func(i, j int) bool {
			if result[i].Name != result[j].Name {
				return result[i].Name < result[j].Name
			}
			return result[i].ID < result[j].ID
		})
	}
	return result, err
}

func (a *Accounts) Insert(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	var result *account.Account
	err := a.v.with(func(d *dataset) error {
		now := a.now()
		acc := &account.Account{
			ID:             d.nextAccountID,
			UserID:         create.UserID,
			Name:           create.Name,
			Type:           create.Type,
			CurrentBalance: create.CurrentBalance,
			Currency:       create.Currency,
			Status:         status.Active,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		d.nextAccountID++
		d.accounts[acc.ID] = acc
		result = copyAccount(acc)
		return nil
	})
	return result, err
}

func (a *Accounts) Update(_ context.Context, id int64, userID int64, update *account.AccountUpdate) (*account.Account, error) {
	return a.mutate(id, userID, func(acc *account.Account) {
		if name, ok := update.Name.Get(); ok {
			acc.Name = name
		}
		if accountType, ok := update.Type.Get(); ok {
			acc.Type = accountType
		}
		if currency, ok := update.Currency.Get(); ok {
			acc.Currency = currency
		}
	})
}

func (a *Accounts) SetStatus(_ context.Context, id int64, userID int64, s status.Status) (*account.Account, error) {
	return a.mutate(id, userID, func(acc *account.Account) {
		acc.Status = s
	})
}

func (a *Accounts) ApplyDelta(_ context.Context, id int64, userID int64, delta decimal.Decimal) (*account.Account, error) {
	return a.mutate(id, userID, func(acc *account.Account) {
		acc.CurrentBalance = acc.CurrentBalance.Add(delta)
	})
}

func (a *Accounts) Delete(_ context.Context, id int64, userID int64) error {
	return a.v.with(func(d *dataset) error {
		if _, err := d.ownedAccount(id, userID); err != nil {
			return err
		}
		for _, t := range d.transactions {
			if t.AccountID == id {
				return errs.Conflict("account %d is referenced by transactions", id)
			}
		}
		delete(d.accounts, id)
		return nil
	})
}

func (a *Accounts) mutate(id int64, userID int64, fn func(acc *account.Account)) (*account.Account, error) {
	var result *account.Account
	err := a.v.with(func(d *dataset) error {
		acc, err := d.ownedAccount(id, userID)
		if err != nil {
			return err
		}
		fn(acc)
		acc.UpdatedAt = a.now()
		result = copyAccount(acc)
		return nil
	})
	return result, err
}
