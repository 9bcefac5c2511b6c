package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

const tableName = "accounts"

var accountColumns = []any{
	"id", "user_id", "name", "type", "current_balance", "currency", "is_active", "created_at", "updated_at",
}

type accountRow struct {
	ID             int64           `db:"id"`
	UserID         int64           `db:"user_id"`
	Name           string          `db:"name"`
	Type           int16           `db:"type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Currency       string          `db:"currency"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func rowToAccount(row accountRow) *Account {
	return &Account{
		ID:             row.ID,
		UserID:         row.UserID,
		Name:           row.Name,
		Type:           AccountType(row.Type),
		CurrentBalance: row.CurrentBalance,
		Currency:       row.Currency,
		Status:         status.FromActive(row.IsActive),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

var _ IAccountReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindOwned(ctx context.Context, id int64, userID int64) (*Account, error) {
	return r.findOwned(ctx, id, userID, false)
}

func (r *Reader) findOwned(ctx context.Context, id int64, userID int64, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("account", id)
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

// List returns the user's accounts. Inactive accounts are skipped unless the
// filter asks for them.
func (r *Reader) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(tableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
	}
	if !filter.IncludeInactive {
		queryMods = append(queryMods, sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))))
	}
	switch filter.Order {
	case OrderByNewest:
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Desc(),
			sm.OrderBy(psql.Quote("id")).Desc(),
		)
	default:
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("name")).Asc(),
			sm.OrderBy(psql.Quote("id")).Asc(),
		)
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Account, len(rows))
	for i, row := range rows {
		result[i] = rowToAccount(row)
	}
	return result, nil
}
