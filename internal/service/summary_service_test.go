package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/errs"
)

func TestMonthly_ZeroFillsMissingMonths(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-100"), Date: day(2024, time.March, 3)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-50.25"), Date: day(2024, time.March, 31)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("900"), Date: day(2024, time.March, 10)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-7"), Date: day(2023, time.March, 10)})

	months, err := svc.Summary.Monthly(context.Background(), testUserID, 2024, "GASTO")
	require.NoError(t, err)
	require.Len(t, months, 12)

	for i, m := range months {
		assert.Equal(t, i+1, m.Month)
		if m.Month == 3 {
			assert.True(t, m.TotalAmount.Equal(dec("-150.25")))
			assert.EqualValues(t, 2, m.TransactionCount)
			continue
		}
		assert.True(t, m.TotalAmount.IsZero(), "month %d", m.Month)
		assert.Zero(t, m.TransactionCount)
	}
}

func TestMonthly_DefaultsToCurrentYearAndAllTypes(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-20"), Date: day(2025, time.January, 5)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("100"), Date: day(2025, time.January, 1)})

	months, err := svc.Summary.Monthly(context.Background(), testUserID, 0, "")
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.True(t, months[0].TotalAmount.Equal(dec("80")))
	assert.EqualValues(t, 2, months[0].TransactionCount)

	_, err = svc.Summary.Monthly(context.Background(), testUserID, 2025, "AHORRO")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestByCategory_ExpenseLargestFirst(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	june := func(d int) time.Time { return day(2025, time.June, d) }
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-100"), Date: june(2)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-50"), Date: june(3)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-10"), Date: june(4)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("1000"), Date: june(1)})
	// Outside the default window.
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-999"), Date: day(2025, time.May, 31)})

	summaries, err := svc.Summary.ByCategory(context.Background(), testUserID, SummaryQuery{Type: "GASTO"})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Totals are signed, so the expense with the largest total is the smallest outflow.
	assert.Equal(t, catTransport, summaries[0].CategoryID)
	assert.True(t, summaries[0].TotalAmount.Equal(dec("-10")))
	assert.EqualValues(t, 1, summaries[0].TransactionCount)
	assert.Equal(t, catFood, summaries[1].CategoryID)
	assert.True(t, summaries[1].TotalAmount.Equal(dec("-150")))
	assert.EqualValues(t, 2, summaries[1].TransactionCount)
	assert.Equal(t, "Alimentación", summaries[1].CategoryName)
	assert.Equal(t, "restaurant", summaries[1].CategoryIcon)
	assert.Equal(t, "#50E3C2", summaries[1].CategoryColor)
}

func TestByCategory_OtherTypesSmallestFirst(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("1000"), Date: day(2025, time.June, 1)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-10"), Date: day(2025, time.June, 1)})

	start, end := day(2025, time.January, 1), day(2025, time.December, 31)
	summaries, err := svc.Summary.ByCategory(context.Background(), testUserID, SummaryQuery{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, catTransport, summaries[0].CategoryID)
	assert.Equal(t, catSalary, summaries[1].CategoryID)

	summaries, err = svc.Summary.ByCategory(context.Background(), otherUserID, SummaryQuery{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
