package actions

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

type mockAccountWriter struct {
	mock.Mock
}

func (m *mockAccountWriter) account(args mock.Arguments) (*account.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountWriter) FindOwned(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return m.account(m.Called(ctx, id, userID))
}

func (m *mockAccountWriter) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*account.Account, error) {
	return m.account(m.Called(ctx, id, userID))
}

func (m *mockAccountWriter) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *mockAccountWriter) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	return m.account(m.Called(ctx, create))
}

func (m *mockAccountWriter) Update(ctx context.Context, id int64, userID int64, update *account.AccountUpdate) (*account.Account, error) {
	return m.account(m.Called(ctx, id, userID, update))
}

func (m *mockAccountWriter) SetStatus(ctx context.Context, id int64, userID int64, s status.Status) (*account.Account, error) {
	return m.account(m.Called(ctx, id, userID, s))
}

func (m *mockAccountWriter) Delete(ctx context.Context, id int64, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockAccountWriter) ApplyDelta(ctx context.Context, id int64, userID int64, delta decimal.Decimal) (*account.Account, error) {
	return m.account(m.Called(ctx, id, userID, delta))
}

type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) transaction(args mock.Arguments) (*transaction.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionWriter) FindOwned(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, id, userID))
}

func (m *mockTransactionWriter) FindOwnedForUpdate(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, id, userID))
}

func (m *mockTransactionWriter) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionWriter) Count(ctx context.Context, filter *transaction.TransactionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockTransactionWriter) SummaryByCategory(ctx context.Context, query *transaction.CategorySummaryQuery) ([]*transaction.CategorySummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*transaction.CategorySummary), args.Error(1)
}

func (m *mockTransactionWriter) MonthlyTotals(ctx context.Context, query *transaction.MonthlySummaryQuery) ([]*transaction.MonthlyTotal, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*transaction.MonthlyTotal), args.Error(1)
}

func (m *mockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, create))
}

func (m *mockTransactionWriter) Update(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, tx))
}

func (m *mockTransactionWriter) Delete(ctx context.Context, id int64, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockTransactionWriter) CountByAccount(ctx context.Context, accountID int64, userID int64) (int, error) {
	args := m.Called(ctx, accountID, userID)
	return args.Int(0), args.Error(1)
}

type mockCategoryReader struct {
	mock.Mock
}

func (m *mockCategoryReader) FindSubcategory(ctx context.Context, id int64) (*category.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Subcategory), args.Error(1)
}

func (m *mockCategoryReader) FindTypeByName(ctx context.Context, name category.TypeName) (*category.CategoryType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.CategoryType), args.Error(1)
}

func (m *mockCategoryReader) ListCategories(ctx context.Context, filter *category.CategoryFilter) ([]*category.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *mockCategoryReader) ListSubcategories(ctx context.Context, filter *category.SubcategoryFilter) ([]*category.Subcategory, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*category.Subcategory), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockWriter struct {
	accounts     *mockAccountWriter
	transactions *mockTransactionWriter
	categories   *mockCategoryReader
	users        *mockUserReader
	writer       *storage.Writer
}

func newMockWriter() *mockWriter {
	m := &mockWriter{
		accounts:     new(mockAccountWriter),
		transactions: new(mockTransactionWriter),
		categories:   new(mockCategoryReader),
		users:        new(mockUserReader),
	}
	m.writer = &storage.Writer{
		Account:     m.accounts,
		Transaction: m.transactions,
		Category:    m.categories,
		User:        m.users,
	}
	return m
}
