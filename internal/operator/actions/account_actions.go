package actions

import (
	"context"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

type CreateAccount struct {
	Create account.AccountCreate

	Result *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.User.FindByID(ctx, c.Create.UserID); err != nil {
		return err
	}

	created, err := writer.Account.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}

	c.Result = created
	return nil
}

type UpdateAccount struct {
	AccountID int64
	UserID    int64
	Update    account.AccountUpdate

	Result *account.Account
}

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Account.Update(ctx, u.AccountID, u.UserID, &u.Update)
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}

// SetAccountStatus activates or deactivates an account. Transactions posted
// against it are untouched.
type SetAccountStatus struct {
	AccountID int64
	UserID    int64
	Status    status.Status

	Result *account.Account
}

func (s *SetAccountStatus) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Account.SetStatus(ctx, s.AccountID, s.UserID, s.Status)
	if err != nil {
		return err
	}

	s.Result = updated
	return nil
}

// DeleteAccount hard-deletes an account that has no transactions.
type DeleteAccount struct {
	AccountID int64
	UserID    int64
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindOwnedForUpdate(ctx, d.AccountID, d.UserID); err != nil {
		return err
	}

	count, err := writer.Transaction.CountByAccount(ctx, d.AccountID, d.UserID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errs.Conflict("account %d still has %d transactions", d.AccountID, count)
	}

	return writer.Account.Delete(ctx, d.AccountID, d.UserID)
}
