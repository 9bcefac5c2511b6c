package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

const userHeader = "X-User-ID: 1"

// mockTransactionService is a mock for transactionService.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) transaction(args mock.Arguments) (*transaction.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionService) Create(ctx context.Context, userID int64, input service.TransactionInput) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, userID, input))
}

func (m *mockTransactionService) FindOne(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, id, userID))
}

func (m *mockTransactionService) FindAll(ctx context.Context, userID int64, query service.TransactionQuery) (*service.TransactionPage, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionPage), args.Error(1)
}

func (m *mockTransactionService) Update(ctx context.Context, id int64, userID int64, patch service.TransactionPatch) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, id, userID, patch))
}

func (m *mockTransactionService) Remove(ctx context.Context, id int64, userID int64) (*transaction.Transaction, error) {
	return m.transaction(m.Called(ctx, id, userID))
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc transactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc).Register(api)
	NewCreateTransactionHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	NewUpdateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	return api
}

func sampleTransaction(id int64) *transaction.Transaction {
	created := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	monthly := transaction.RecurrenceMonthly
	return &transaction.Transaction{
		ID:               id,
		UserID:           1,
		AccountID:        3,
		SubcategoryID:    4,
		Amount:           decimal.RequireFromString("-5000"),
		Date:             time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Description:      "Supermercado mensual",
		Tags:             "comida",
		IsRecurring:      true,
		RecurrencePeriod: &monthly,
		CreatedAt:        created,
		UpdatedAt:        created,
		Subcategory: &category.Subcategory{
			ID:         4,
			Name:       "Supermercado",
			CategoryID: 2,
			Category: &category.Category{
				ID:    2,
				Name:  "Alimentación",
				Icon:  "restaurant",
				Color: "#50E3C2",
				Type:  &category.CategoryType{ID: 1, Name: category.TypeExpense},
			},
		},
		Account: &account.Account{ID: 3, Name: "Cuenta Principal", Currency: "ARS"},
	}
}
