package actions

import (
	"context"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// CreateTransaction records a transaction and posts its amount to the account.
type CreateTransaction struct {
	Create transaction.TransactionCreate

	Result *transaction.Transaction
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Category.FindSubcategory(ctx, c.Create.SubcategoryID); err != nil {
		return err
	}
	if _, err := lockAccounts(ctx, writer, c.Create.UserID, c.Create.AccountID); err != nil {
		return err
	}

	created, err := writer.Transaction.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}

	if _, err = writer.Account.ApplyDelta(ctx, c.Create.AccountID, c.Create.UserID, c.Create.Amount); err != nil {
		return err
	}

	c.Result, err = writer.Transaction.FindOwned(ctx, created.ID, c.Create.UserID)
	return err
}

// UpdateTransaction applies a patch and moves the balance difference between
// the accounts involved.
type UpdateTransaction struct {
	TransactionID int64
	UserID        int64
	Patch         transaction.TransactionPatch

	Result *transaction.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindOwnedForUpdate(ctx, u.TransactionID, u.UserID)
	if err != nil {
		return err
	}
	oldAccountID, oldAmount := existing.AccountID, existing.Amount

	merged := *existing
	u.Patch.Apply(&merged)

	if merged.SubcategoryID != existing.SubcategoryID {
		if _, err = writer.Category.FindSubcategory(ctx, merged.SubcategoryID); err != nil {
			return err
		}
	}
	if _, err = lockAccounts(ctx, writer, u.UserID, oldAccountID, merged.AccountID); err != nil {
		return err
	}

	if _, err = writer.Transaction.Update(ctx, &merged); err != nil {
		return err
	}

	switch {
	case merged.AccountID != oldAccountID:
		if _, err = writer.Account.ApplyDelta(ctx, oldAccountID, u.UserID, oldAmount.Neg()); err != nil {
			return err
		}
		if _, err = writer.Account.ApplyDelta(ctx, merged.AccountID, u.UserID, merged.Amount); err != nil {
			return err
		}
	case !merged.Amount.Equal(oldAmount):
		if _, err = writer.Account.ApplyDelta(ctx, oldAccountID, u.UserID, merged.Amount.Sub(oldAmount)); err != nil {
			return err
		}
	}

	u.Result, err = writer.Transaction.FindOwned(ctx, u.TransactionID, u.UserID)
	return err
}

// RemoveTransaction deletes a transaction and reverses its amount on the account.
type RemoveTransaction struct {
	TransactionID int64
	UserID        int64

	Result *transaction.Transaction
}

func (r *RemoveTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindOwnedForUpdate(ctx, r.TransactionID, r.UserID)
	if err != nil {
		return err
	}
	if _, err = lockAccounts(ctx, writer, r.UserID, existing.AccountID); err != nil {
		return err
	}

	if _, err = writer.Account.ApplyDelta(ctx, existing.AccountID, r.UserID, existing.Amount.Neg()); err != nil {
		return err
	}
	if err = writer.Transaction.Delete(ctx, r.TransactionID, r.UserID); err != nil {
		return err
	}

	r.Result = existing
	return nil
}
