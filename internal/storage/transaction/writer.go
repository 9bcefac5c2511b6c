package transaction

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-ledger/internal/errs"
)

var _ ITransactionWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func recurrenceArg(period *RecurrencePeriod) sql.NullString {
	if period == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*period), Valid: true}
}

func (w *Writer) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*Transaction, error) {
	return w.findOwned(ctx, id, userID, true)
}

// Insert stores the transaction and returns it reloaded with its relations.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into(tableName,
			"user_id", "account_id", "subcategory_id", "amount", "date",
			"description", "notes", "tags", "is_recurring", "recurrence_period",
		),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.AccountID),
			psql.Arg(create.SubcategoryID),
			psql.Arg(create.Amount),
			psql.Raw("?::date", dateArg(create.Date)),
			psql.Arg(create.Description),
			psql.Arg(create.Notes),
			psql.Arg(create.Tags),
			psql.Arg(create.IsRecurring),
			psql.Arg(recurrenceArg(create.RecurrencePeriod)),
		),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return nil, err
	}
	return w.FindOwned(ctx, id, create.UserID)
}

func (w *Writer) Update(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("account_id").ToArg(tx.AccountID),
		um.SetCol("subcategory_id").ToArg(tx.SubcategoryID),
		um.SetCol("amount").ToArg(tx.Amount),
		um.SetCol("date").To(psql.Raw("?::date", dateArg(tx.Date))),
		um.SetCol("description").ToArg(tx.Description),
		um.SetCol("notes").ToArg(tx.Notes),
		um.SetCol("tags").ToArg(tx.Tags),
		um.SetCol("is_recurring").ToArg(tx.IsRecurring),
		um.SetCol("recurrence_period").ToArg(recurrenceArg(tx.RecurrencePeriod)),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(tx.UserID))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errs.NotFound("transaction", tx.ID)
	}
	return w.FindOwned(ctx, tx.ID, tx.UserID)
}

func (w *Writer) Delete(ctx context.Context, id int64, userID int64) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.NotFound("transaction", id)
	}
	return nil
}

// CountByAccount counts every transaction referencing the account.
func (w *Writer) CountByAccount(ctx context.Context, accountID int64, userID int64) (int, error) {
	query := psql.Select(
		sm.Columns("count(*)"),
		sm.From(tableName),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	count, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
