package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/operator"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/memory"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

const (
	testUserID  = int64(1)
	otherUserID = int64(2)

	// Seeded subcategories.
	subSupermarket = int64(4)  // Alimentación, GASTO
	subFuel        = int64(7)  // Transporte, GASTO
	subSalary      = int64(20) // Ingresos laborales, INGRESO

	catFood      = int64(2)
	catTransport = int64(3)
	catSalary    = int64(13)
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	memory.Seed(store)
	store.AddUser(user.User{ID: otherUserID, FirstName: "Otra", LastName: "Persona", Email: "otra@prueba.com", CurrencyPreference: "USD", Status: status.Active})
	s := storage.NewMemoryStorage(store)

	logger := logrus.New()
	logger.Out = io.Discard

	op := operator.NewOperatorDelegator(s, 2, logger)
	op.Start()
	t.Cleanup(op.Stop)

	svc := NewService(s, op)
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

func createAccount(t *testing.T, svc *Service, userID int64, name string, balance string) *account.Account {
	t.Helper()
	acc, err := svc.Account.Create(context.Background(), userID, AccountInput{
		Name:           name,
		CurrentBalance: dec(balance),
	})
	require.NoError(t, err)
	return acc
}

func createTransaction(t *testing.T, svc *Service, userID int64, input TransactionInput) *transaction.Transaction {
	t.Helper()
	if input.Date.IsZero() {
		input.Date = testNow
	}
	tx, err := svc.Transaction.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return tx
}

func balanceOf(t *testing.T, svc *Service, userID int64, accountID int64) decimal.Decimal {
	t.Helper()
	acc, err := svc.Account.FindOne(context.Background(), accountID, userID)
	require.NoError(t, err)
	return acc.CurrentBalance
}
