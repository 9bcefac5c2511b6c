package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

var _ IAccountWriter = (*Writer)(nil)

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

func (w *Writer) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*Account, error) {
	return w.findOwned(ctx, id, userID, true)
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	query := psql.Insert(
		im.Into(tableName, "user_id", "name", "type", "current_balance", "currency", "is_active"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Name),
			psql.Arg(int16(create.Type)),
			psql.Arg(create.CurrentBalance),
			psql.Arg(create.Currency),
			psql.Arg(true),
		),
		im.Returning(accountColumns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

func (w *Writer) Update(ctx context.Context, id int64, userID int64, update *AccountUpdate) (*Account, error) {
	var setMods []bob.Mod[*dialect.UpdateQuery]
	if name, ok := update.Name.Get(); ok {
		setMods = append(setMods, um.SetCol("name").ToArg(name))
	}
	if accountType, ok := update.Type.Get(); ok {
		setMods = append(setMods, um.SetCol("type").ToArg(int16(accountType)))
	}
	if currency, ok := update.Currency.Get(); ok {
		setMods = append(setMods, um.SetCol("currency").ToArg(currency))
	}
	return w.updateOwned(ctx, id, userID, setMods...)
}

func (w *Writer) SetStatus(ctx context.Context, id int64, userID int64, s status.Status) (*Account, error) {
	return w.updateOwned(ctx, id, userID, um.SetCol("is_active").ToArg(s.IsActive()))
}

func (w *Writer) ApplyDelta(ctx context.Context, id int64, userID int64, delta decimal.Decimal) (*Account, error) {
	return w.updateOwned(ctx, id, userID,
		um.SetCol("current_balance").To(psql.Raw("current_balance + ?", delta)),
	)
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
		return errs.NotFound("account", id)
	}
	return nil
}

func (w *Writer) updateOwned(ctx context.Context, id int64, userID int64, setMods ...bob.Mod[*dialect.UpdateQuery]) (*Account, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{um.Table(tableName)}
	queryMods = append(queryMods, setMods...)
	queryMods = append(queryMods,
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("account", id)
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}
