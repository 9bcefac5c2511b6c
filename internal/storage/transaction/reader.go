package transaction

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
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
)

const tableName = "transactions"

var transactionColumns = []any{
	"t.id AS id",
	"t.user_id AS user_id",
	"t.amount AS amount",
	"t.date AS date",
	"t.description AS description",
	"t.notes AS notes",
	"t.tags AS tags",
	"t.is_recurring AS is_recurring",
	"t.recurrence_period AS recurrence_period",
	"t.created_at AS created_at",
	"t.updated_at AS updated_at",
}

var accountColumns = []any{
	"a.id AS account_id",
	"a.name AS account_name",
	"a.type AS account_type",
	"a.current_balance AS account_current_balance",
	"a.currency AS account_currency",
	"a.is_active AS account_is_active",
	"a.created_at AS account_created_at",
	"a.updated_at AS account_updated_at",
}

type transactionRow struct {
	ID               int64           `db:"id"`
	UserID           int64           `db:"user_id"`
	Amount           decimal.Decimal `db:"amount"`
	Date             time.Time       `db:"date"`
	Description      string          `db:"description"`
	Notes            string          `db:"notes"`
	Tags             string          `db:"tags"`
	IsRecurring      bool            `db:"is_recurring"`
	RecurrencePeriod *string         `db:"recurrence_period"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`

	AccountID             int64           `db:"account_id"`
	AccountName           string          `db:"account_name"`
	AccountType           int16           `db:"account_type"`
	AccountCurrentBalance decimal.Decimal `db:"account_current_balance"`
	AccountCurrency       string          `db:"account_currency"`
	AccountIsActive       bool            `db:"account_is_active"`
	AccountCreatedAt      time.Time       `db:"account_created_at"`
	AccountUpdatedAt      time.Time       `db:"account_updated_at"`

	category.SubcategoryRow
}

func rowToTransaction(row transactionRow) *Transaction {
	var period *RecurrencePeriod
	if row.RecurrencePeriod != nil {
		p := RecurrencePeriod(*row.RecurrencePeriod)
		period = &p
	}
	subcategory := row.ToSubcategory()
	return &Transaction{
		ID:               row.ID,
		UserID:           row.UserID,
		AccountID:        row.AccountID,
		SubcategoryID:    subcategory.ID,
		Amount:           row.Amount,
		Date:             DateOnly(row.Date),
		Description:      row.Description,
		Notes:            row.Notes,
		Tags:             row.Tags,
		IsRecurring:      row.IsRecurring,
		RecurrencePeriod: period,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		Subcategory:      subcategory,
		Account: &account.Account{
			ID:             row.AccountID,
			UserID:         row.UserID,
			Name:           row.AccountName,
			Type:           account.AccountType(row.AccountType),
			CurrentBalance: row.AccountCurrentBalance,
			Currency:       row.AccountCurrency,
			Status:         status.FromActive(row.AccountIsActive),
			CreatedAt:      row.AccountCreatedAt,
			UpdatedAt:      row.AccountUpdatedAt,
		},
	}
}

func dateArg(t time.Time) string {
	return t.Format(time.DateOnly)
}

// fromJoined selects from transactions (t) joined through subcategories (s),
// categories (c), category_types (ct) and accounts (a).
func fromJoined() []bob.Mod[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.From("transactions AS t"),
		sm.InnerJoin("subcategories AS s").On(psql.Raw("s.id = t.subcategory_id")),
	}
	queryMods = append(queryMods, category.JoinHierarchy()...)
	return append(queryMods, sm.InnerJoin("accounts AS a").On(psql.Raw("a.id = t.account_id")))
}

func whereFilter(filter *TransactionFilter) []bob.Mod[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.StartDate != nil {
		queryMods = append(queryMods, sm.Where(psql.Raw("t.date >= ?::date", dateArg(*filter.StartDate))))
	}
	if filter.EndDate != nil {
		queryMods = append(queryMods, sm.Where(psql.Raw("t.date <= ?::date", dateArg(*filter.EndDate))))
	}
	if filter.MinAmount != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "amount").GTE(psql.Arg(*filter.MinAmount))))
	}
	if filter.MaxAmount != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "amount").LTE(psql.Arg(*filter.MaxAmount))))
	}
	if filter.SubcategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "subcategory_id").EQ(psql.Arg(*filter.SubcategoryID))))
	}
	if filter.CategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("s", "category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.AccountID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "account_id").EQ(psql.Arg(*filter.AccountID))))
	}
	if filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("ct", "name").EQ(psql.Arg(string(*filter.Type)))))
	}
	if filter.IsRecurring != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "is_recurring").EQ(psql.Arg(*filter.IsRecurring))))
	}
	if filter.RecurrencePeriod != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "recurrence_period").EQ(psql.Arg(string(*filter.RecurrencePeriod)))))
	}
	if filter.Search != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "description").Like(psql.Arg("%"+EscapeLike(filter.Search)+"%"))))
	}
	if filter.Tag != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "tags").Like(psql.Arg("%"+EscapeLike(filter.Tag)+"%"))))
	}
	return queryMods
}

var _ ITransactionReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) selectJoined(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	all := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.Columns(accountColumns...),
		sm.Columns(category.SubcategoryColumns...),
		sm.Columns(category.CategoryColumns...),
	}
	all = append(all, fromJoined()...)
	all = append(all, queryMods...)
	return psql.Select(all...)
}

// FindOwned retrieves a transaction with its relations, scoped to the owner.
func (r *Reader) FindOwned(ctx context.Context, id int64, userID int64) (*Transaction, error) {
	return r.findOwned(ctx, id, userID, false)
}

func (r *Reader) findOwned(ctx context.Context, id int64, userID int64, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
	}
	if forUpdate {
		// Only the transaction row; account rows are locked separately in id order.
		queryMods = append(queryMods, sm.ForUpdate("t"))
	}
	row, err := bob.One(ctx, r.exec, r.selectJoined(queryMods...), scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}

// List returns one page of transactions matching the filter.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := whereFilter(filter)

	sortField := filter.SortField
	if sortField == "" {
		sortField = SortByDate
	}
	primary := sm.OrderBy(psql.Quote("t", string(sortField)))
	tiebreak := sm.OrderBy(psql.Quote("t", "id"))
	if filter.SortOrder == SortAsc {
		queryMods = append(queryMods, primary.Asc(), tiebreak.Asc())
	} else {
		queryMods = append(queryMods, primary.Desc(), tiebreak.Desc())
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	rows, err := bob.All(ctx, r.exec, r.selectJoined(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

// Count returns the number of transactions matching the filter, ignoring
// pagination.
func (r *Reader) Count(ctx context.Context, filter *TransactionFilter) (int, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{sm.Columns("count(*)")}
	queryMods = append(queryMods, fromJoined()...)
	queryMods = append(queryMods, whereFilter(filter)...)

	count, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

type categorySummaryRow struct {
	CategoryID       int64           `db:"category_id"`
	CategoryName     string          `db:"category_name"`
	CategoryIcon     string          `db:"category_icon"`
	CategoryColor    string          `db:"category_color"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	TransactionCount int64           `db:"transaction_count"`
}

func (r *Reader) SummaryByCategory(ctx context.Context, query *CategorySummaryQuery) ([]*CategorySummary, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"c.id AS category_id",
			"c.name AS category_name",
			"c.icon AS category_icon",
			"c.color AS category_color",
			"COALESCE(SUM(t.amount), 0) AS total_amount",
			"COUNT(t.id) AS transaction_count",
		),
	}
	queryMods = append(queryMods, fromJoined()...)
	queryMods = append(queryMods,
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(query.UserID))),
		sm.Where(psql.Raw("t.date BETWEEN ?::date AND ?::date", dateArg(query.StartDate), dateArg(query.EndDate))),
	)
	if query.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("ct", "name").EQ(psql.Arg(string(*query.Type)))))
	}
	queryMods = append(queryMods,
		sm.GroupBy("c.id"),
		sm.GroupBy("c.name"),
		sm.GroupBy("c.icon"),
		sm.GroupBy("c.color"),
	)
	if query.Descending() {
		queryMods = append(queryMods, sm.OrderBy("total_amount").Desc())
	} else {
		queryMods = append(queryMods, sm.OrderBy("total_amount").Asc())
	}
	queryMods = append(queryMods, sm.OrderBy("c.id").Asc())

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[categorySummaryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*CategorySummary, len(rows))
	for i, row := range rows {
		result[i] = &CategorySummary{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			CategoryIcon:     row.CategoryIcon,
			CategoryColor:    row.CategoryColor,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
		}
	}
	return result, nil
}

type monthlyTotalRow struct {
	Month            int             `db:"month"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	TransactionCount int64           `db:"transaction_count"`
}

// MonthlyTotals groups the year's transactions by month number. Empty months
// are not returned.
func (r *Reader) MonthlyTotals(ctx context.Context, query *MonthlySummaryQuery) ([]*MonthlyTotal, error) {
	yearStart := time.Date(query.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(query.Year, time.December, 31, 0, 0, 0, 0, time.UTC)

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"EXTRACT(MONTH FROM t.date)::int AS month",
			"COALESCE(SUM(t.amount), 0) AS total_amount",
			"COUNT(t.id) AS transaction_count",
		),
	}
	queryMods = append(queryMods, fromJoined()...)
	queryMods = append(queryMods,
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(query.UserID))),
		sm.Where(psql.Raw("t.date BETWEEN ?::date AND ?::date", dateArg(yearStart), dateArg(yearEnd))),
	)
	if query.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("ct", "name").EQ(psql.Arg(string(*query.Type)))))
	}
	queryMods = append(queryMods,
		sm.GroupBy("month"),
		sm.OrderBy("month").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[monthlyTotalRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*MonthlyTotal, len(rows))
	for i, row := range rows {
		result[i] = &MonthlyTotal{
			Month:            row.Month,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
		}
	}
	return result, nil
}
