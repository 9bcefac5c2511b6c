package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

var _ transaction.ITransactionWriter = (*Transactions)(nil)

type Transactions struct {
	v   view
	now func() time.Time
}

// hydrate returns a copy of t with its subcategory hierarchy and account attached.
func (d *dataset) hydrate(t *transaction.Transaction) *transaction.Transaction {
	cp := *t
	cp.Subcategory = d.subcategoryWithParents(t.SubcategoryID)
	if acc, ok := d.accounts[t.AccountID]; ok {
		cp.Account = copyAccount(acc)
	}
	return &cp
}

func (d *dataset) ownedTransaction(id int64, userID int64) (*transaction.Transaction, error) {
	t, ok := d.transactions[id]
	if !ok || t.UserID != userID {
		return nil, errs.NotFound("transaction", id)
	}
	return t, nil
}

func (d *dataset) typeOf(t *transaction.Transaction) (category.TypeName, int64) {
	sub := d.subcategoryWithParents(t.SubcategoryID)
	if sub == nil || sub.Category == nil {
		return "", 0
	}
	if sub.Category.Type == nil {
		return "", sub.CategoryID
	}
	return sub.Category.Type.Name, sub.CategoryID
}

func (d *dataset) matches(t *transaction.Transaction, filter *transaction.TransactionFilter) bool {
	if t.UserID != filter.UserID {
		return false
	}
	if filter.StartDate != nil && t.Date.Before(transaction.DateOnly(*filter.StartDate)) {
		return false
	}
	if filter.EndDate != nil && t.Date.After(transaction.DateOnly(*filter.EndDate)) {
		return false
	}
	if filter.MinAmount != nil && t.Amount.LessThan(*filter.MinAmount) {
		return false
	}
	if filter.MaxAmount != nil && t.Amount.GreaterThan(*filter.MaxAmount) {
		return false
	}
	if filter.SubcategoryID != nil && t.SubcategoryID != *filter.SubcategoryID {
		return false
	}
	if filter.AccountID != nil && t.AccountID != *filter.AccountID {
		return false
	}
	if filter.CategoryID != nil || filter.Type != nil {
		typeName, categoryID := d.typeOf(t)
		if filter.CategoryID != nil && categoryID != *filter.CategoryID {
			return false
		}
		if filter.Type != nil && typeName != *filter.Type {
			return false
		}
	}
	if filter.IsRecurring != nil && t.IsRecurring != *filter.IsRecurring {
		return false
	}
	if filter.RecurrencePeriod != nil && (t.RecurrencePeriod == nil || *t.RecurrencePeriod != *filter.RecurrencePeriod) {
		return false
	}
	if filter.Search != "" && !strings.Contains(t.Description, filter.Search) {
		return false
	}
	if filter.Tag != "" && !strings.Contains(t.Tags, filter.Tag) {
		return false
	}
	return true
}

func compareBy(a, b *transaction.Transaction, field transaction.SortField) int {
	switch field {
	case transaction.SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case transaction.SortByDescription:
		return strings.Compare(a.Description, b.Description)
	case transaction.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case transaction.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case transaction.SortByID:
		return 0
	default:
		return a.Date.Compare(b.Date)
	}
}

func (tr *Transactions) FindOwned(_ context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	var result *transaction.Transaction
	err := tr.v.with(func(d *dataset) error {
		t, err := d.ownedTransaction(id, userID)
		if err != nil {
			return err
		}
		result = d.hydrate(t)
		return nil
	})
	return result, err
}

// FindOwnedForUpdate is FindOwned: the enclosing Tx already holds the store lock.
func (tr *Transactions) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return tr.FindOwned(ctx, id, userID)
}

func (tr *Transactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var matched []*transaction.Transaction
	err := tr.v.with(func(d *dataset) error {
		for _, t := range d.transactions {
			if d.matches(t, filter) {
				matched = append(matched, d.hydrate(t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	desc := filter.SortOrder != transaction.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		c := compareBy(matched[i], matched[j], filter.SortField)
		if c == 0 {
			c = compareIDs(matched[i].ID, matched[j].ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	if filter.Offset >= len(matched) {
		return []*transaction.Transaction{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (tr *Transactions) Count(_ context.Context, filter *transaction.TransactionFilter) (int, error) {
	count := 0
	err := tr.v.with(func(d *dataset) error {
		for _, t := range d.transactions {
			if d.matches(t, filter) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (tr *Transactions) SummaryByCategory(_ context.Context, query *transaction.CategorySummaryQuery) ([]*transaction.CategorySummary, error) {
	byCategory := map[int64]*transaction.CategorySummary{}
	start, end := transaction.DateOnly(query.StartDate), transaction.DateOnly(query.EndDate)
	err := tr.v.with(func(d *dataset) error {
		for _, t := range d.transactions {
			if t.UserID != query.UserID || t.Date.Before(start) || t.Date.After(end) {
				continue
			}
			sub := d.subcategoryWithParents(t.SubcategoryID)
			if sub == nil || sub.Category == nil {
				continue
			}
			if query.Type != nil && (sub.Category.Type == nil || sub.Category.Type.Name != *query.Type) {
				continue
			}
			summary, ok := byCategory[sub.CategoryID]
			if !ok {
				summary = &transaction.CategorySummary{
					CategoryID:    sub.CategoryID,
					CategoryName:  sub.Category.Name,
					CategoryIcon:  sub.Category.Icon,
					CategoryColor: sub.Category.Color,
					TotalAmount:   decimal.Zero,
				}
				byCategory[sub.CategoryID] = summary
			}
			summary.TotalAmount = summary.TotalAmount.Add(t.Amount)
			summary.TransactionCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]*transaction.CategorySummary, 0, len(byCategory))
	for _, summary := range byCategory {
		result = append(result, summary)
	}
	desc := query.Descending()
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].TotalAmount.Cmp(result[j].TotalAmount); c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result, nil
}

func (tr *Transactions) MonthlyTotals(_ context.Context, query *transaction.MonthlySummaryQuery) ([]*transaction.MonthlyTotal, error) {
	byMonth := map[int]*transaction.MonthlyTotal{}
	err := tr.v.with(func(d *dataset) error {
		for _, t := range d.transactions {
			if t.UserID != query.UserID || t.Date.Year() != query.Year {
				continue
			}
			if query.Type != nil {
				if typeName, _ := d.typeOf(t); typeName != *query.Type {
					continue
				}
			}
			month := int(t.Date.Month())
			total, ok := byMonth[month]
			if !ok {
				total = &transaction.MonthlyTotal{Month: month, TotalAmount: decimal.Zero}
				byMonth[month] = total
			}
			total.TotalAmount = total.TotalAmount.Add(t.Amount)
			total.TransactionCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]*transaction.MonthlyTotal, 0, len(byMonth))
	for _, total := range byMonth {
		result = append(result, total)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result, nil
}

func (tr *Transactions) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	var result *transaction.Transaction
	err := tr.v.with(func(d *dataset) error {
		if _, ok := d.subcategories[create.SubcategoryID]; !ok {
			return errs.NotFound("subcategory", create.SubcategoryID)
		}
		if _, err := d.ownedAccount(create.AccountID, create.UserID); err != nil {
			return err
		}
		now := tr.now()
		t := &transaction.Transaction{
			ID:               d.nextTransactionID,
			UserID:           create.UserID,
			AccountID:        create.AccountID,
			SubcategoryID:    create.SubcategoryID,
			Amount:           create.Amount,
			Date:             transaction.DateOnly(create.Date),
			Description:      create.Description,
			Notes:            create.Notes,
			Tags:             create.Tags,
			IsRecurring:      create.IsRecurring,
			RecurrencePeriod: create.RecurrencePeriod,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		d.nextTransactionID++
		d.transactions[t.ID] = t
		result = d.hydrate(t)
		return nil
	})
	return result, err
}

func (tr *Transactions) Update(_ context.Context, updated *transaction.Transaction) (*transaction.Transaction, error) {
	var result *transaction.Transaction
	err := tr.v.with(func(d *dataset) error {
		t, err := d.ownedTransaction(updated.ID, updated.UserID)
		if err != nil {
			return err
		}
		t.AccountID = updated.AccountID
		t.SubcategoryID = updated.SubcategoryID
		t.Amount = updated.Amount
		t.Date = transaction.DateOnly(updated.Date)
		t.Description = updated.Description
		t.Notes = updated.Notes
		t.Tags = updated.Tags
		t.IsRecurring = updated.IsRecurring
		t.RecurrencePeriod = updated.RecurrencePeriod
		t.UpdatedAt = tr.now()
		result = d.hydrate(t)
		return nil
	})
	return result, err
}

func (tr *Transactions) Delete(_ context.Context, id int64, userID int64) error {
	return tr.v.with(func(d *dataset) error {
		if _, err := d.ownedTransaction(id, userID); err != nil {
			return err
		}
		delete(d.transactions, id)
		return nil
	})
}

func (tr *Transactions) CountByAccount(_ context.Context, accountID int64, userID int64) (int, error) {
	count := 0
	err := tr.v.with(func(d *dataset) error {
		for _, t := range d.transactions {
			if t.AccountID == accountID && t.UserID == userID {
				count++
			}
		}
		return nil
	})
	return count, err
}
