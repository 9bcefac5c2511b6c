package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// -- Create / Update / Remove and the account balance --

func TestCreate_AppliesAmountToBalance(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta Principal", "50000")

	tx := createTransaction(t, svc, testUserID, TransactionInput{
		AccountID:     acc.ID,
		SubcategoryID: subSupermarket,
		Amount:        dec("-5000"),
		Description:   "Supermercado mensual",
	})

	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("45000")))
	require.NotNil(t, tx.Subcategory)
	require.NotNil(t, tx.Subcategory.Category)
	require.NotNil(t, tx.Subcategory.Category.Type)
	assert.Equal(t, category.TypeExpense, tx.Subcategory.Category.Type.Name)
	require.NotNil(t, tx.Account)
	assert.True(t, tx.Account.CurrentBalance.Equal(dec("45000")))
	assert.Equal(t, day(2025, time.June, 15), tx.Date)
}

func TestUpdate_SameAccountNetDelta(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta Principal", "50000")
	tx := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-5000")})

	updated, err := svc.Transaction.Update(context.Background(), tx.ID, testUserID, TransactionPatch{
		Amount: omit.From(dec("-3000")),
	})
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(dec("-3000")))
	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("47000")))
}

func TestUpdate_MoveBetweenAccounts(t *testing.T) {
	svc := newTestService(t)
	a := createAccount(t, svc, testUserID, "A", "1000")
	b := createAccount(t, svc, testUserID, "B", "2000")
	tx := createTransaction(t, svc, testUserID, TransactionInput{AccountID: a.ID, SubcategoryID: subFuel, Amount: dec("-3000")})
	require.True(t, balanceOf(t, svc, testUserID, a.ID).Equal(dec("-2000")))

	_, err := svc.Transaction.Update(context.Background(), tx.ID, testUserID, TransactionPatch{
		AccountID: omit.From(b.ID),
	})
	require.NoError(t, err)

	assert.True(t, balanceOf(t, svc, testUserID, a.ID).Equal(dec("1000")))
	assert.True(t, balanceOf(t, svc, testUserID, b.ID).Equal(dec("-1000")))
}

func TestUpdate_ForeignAccountIsNotFoundAndUnchanged(t *testing.T) {
	svc := newTestService(t)
	mine := createAccount(t, svc, testUserID, "Mía", "100")
	theirs := createAccount(t, svc, otherUserID, "Ajena", "100")
	tx := createTransaction(t, svc, testUserID, TransactionInput{AccountID: mine.ID, SubcategoryID: subFuel, Amount: dec("-10")})

	_, err := svc.Transaction.Update(context.Background(), tx.ID, testUserID, TransactionPatch{
		AccountID: omit.From(theirs.ID),
		Amount:    omit.From(dec("-99")),
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.True(t, balanceOf(t, svc, testUserID, mine.ID).Equal(dec("90")))
	assert.True(t, balanceOf(t, svc, otherUserID, theirs.ID).Equal(dec("100")))
	stored, err := svc.Transaction.FindOne(context.Background(), tx.ID, testUserID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(dec("-10")))
}

func TestUpdate_ClearsRecurrence(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	tx := createTransaction(t, svc, testUserID, TransactionInput{
		AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("1500"),
		IsRecurring: true, RecurrencePeriod: "monthly",
	})
	require.NotNil(t, tx.RecurrencePeriod)

	updated, err := svc.Transaction.Update(context.Background(), tx.ID, testUserID, TransactionPatch{
		IsRecurring:      omit.From(false),
		RecurrencePeriod: omitnull.FromPtr[string](nil),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsRecurring)
	assert.Nil(t, updated.RecurrencePeriod)
}

func TestRemove_ReversesAmount(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "10000")
	tx := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("150000")})
	require.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("160000")))

	removed, err := svc.Transaction.Remove(context.Background(), tx.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, removed.ID)

	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("10000")))
	_, err = svc.Transaction.FindOne(context.Background(), tx.ID, testUserID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBalanceMatchesReplay(t *testing.T) {
	svc := newTestService(t)
	a := createAccount(t, svc, testUserID, "A", "500")
	b := createAccount(t, svc, testUserID, "B", "0")
	start := map[int64]decimal.Decimal{a.ID: dec("500"), b.ID: dec("0")}

	rng := rand.New(rand.NewSource(7))
	var live []int64
	for i := 0; i < 60; i++ {
		amount := decimal.New(rng.Int63n(2000000)-1000000, -2)
		accountID := a.ID
		if rng.Intn(2) == 0 {
			accountID = b.ID
		}
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			tx := createTransaction(t, svc, testUserID, TransactionInput{AccountID: accountID, SubcategoryID: subFuel, Amount: amount})
			live = append(live, tx.ID)
		case op == 1:
			id := live[rng.Intn(len(live))]
			_, err := svc.Transaction.Update(context.Background(), id, testUserID, TransactionPatch{
				AccountID: omit.From(accountID),
				Amount:    omit.From(amount),
			})
			require.NoError(t, err)
		default:
			idx := rng.Intn(len(live))
			_, err := svc.Transaction.Remove(context.Background(), live[idx], testUserID)
			require.NoError(t, err)
			live = append(live[:idx], live[idx+1:]...)
		}
	}

	page, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Limit: maxLimit})
	require.NoError(t, err)
	require.Equal(t, len(live), page.Total)

	expected := map[int64]decimal.Decimal{a.ID: start[a.ID], b.ID: start[b.ID]}
	for _, tx := range page.Data {
		expected[tx.AccountID] = expected[tx.AccountID].Add(tx.Amount)
	}
	assert.True(t, balanceOf(t, svc, testUserID, a.ID).Equal(expected[a.ID]))
	assert.True(t, balanceOf(t, svc, testUserID, b.ID).Equal(expected[b.ID]))
}

func TestConcurrentCreatesKeepBalance(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")

	errCh := make(chan error, 40)
	for i := 0; i < 40; i++ {
		go func() {
			_, err := svc.Transaction.Create(context.Background(), testUserID, TransactionInput{
				AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-2.50"), Date: testNow,
			})
			errCh <- err
		}()
	}
	for i := 0; i < 40; i++ {
		require.NoError(t, <-errCh)
	}

	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("-100")))
}

func TestConcurrentUpdateAndRemoveKeepBalance(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "50000")

	for round := 0; round < 20; round++ {
		created, err := svc.Transaction.Create(context.Background(), testUserID, TransactionInput{
			AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-5000"), Date: testNow,
		})
		require.NoError(t, err)

		updateErr := make(chan error, 1)
		removeErr := make(chan error, 1)
		go func() {
			_, err := svc.Transaction.Update(context.Background(), created.ID, testUserID, TransactionPatch{Amount: omit.From(dec("-3000"))})
			updateErr <- err
		}()
		go func() {
			_, err := svc.Transaction.Remove(context.Background(), created.ID, testUserID)
			removeErr <- err
		}()

		require.NoError(t, <-removeErr)
		if err := <-updateErr; err != nil {
			require.ErrorIs(t, err, errs.ErrNotFound)
		}
		assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("50000")), "round %d", round)
	}
}

// -- Validation and NotFound --

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "100")

	cases := map[string]TransactionInput{
		"amount too large":  {Amount: dec("10000000")},
		"amount too small":  {Amount: dec("-9999999.999")},
		"three decimals":    {Amount: dec("1.005")},
		"unknown period":    {Amount: dec("1"), RecurrencePeriod: "fortnightly"},
		"description 256ch": {Amount: dec("1"), Description: string(make([]byte, 256))},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			input.AccountID = acc.ID
			input.SubcategoryID = subFuel
			_, err := svc.Transaction.Create(context.Background(), testUserID, input)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}

	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).Equal(dec("100")))
}

func TestCreate_BoundaryAmountsAccepted(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")

	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("9999999.99")})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-9999999.99")})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("0")})

	assert.True(t, balanceOf(t, svc, testUserID, acc.ID).IsZero())
}

func TestCreate_NotFound(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "100")
	foreign := createAccount(t, svc, otherUserID, "Ajena", "100")

	_, err := svc.Transaction.Create(context.Background(), testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: 9999, Amount: dec("1")})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.Transaction.Create(context.Background(), testUserID, TransactionInput{AccountID: foreign.ID, SubcategoryID: subFuel, Amount: dec("1")})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.Transaction.Create(context.Background(), 404, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("1")})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.True(t, balanceOf(t, svc, otherUserID, foreign.ID).Equal(dec("100")))
}

func TestFindOne_MissingIsAlwaysNotFound(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	theirs := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-1")})

	for i := 0; i < 3; i++ {
		_, err := svc.Transaction.FindOne(context.Background(), 123456, testUserID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		_, err = svc.Transaction.FindOne(context.Background(), theirs.ID, otherUserID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	}
	_, err := svc.Transaction.Remove(context.Background(), 123456, testUserID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = svc.Transaction.Update(context.Background(), 123456, testUserID, TransactionPatch{})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// -- FindAll --

func seedListing(t *testing.T, svc *Service) (accountID int64) {
	t.Helper()
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	for i := 0; i < 25; i++ {
		createTransaction(t, svc, testUserID, TransactionInput{
			AccountID:     acc.ID,
			SubcategoryID: subSupermarket,
			Amount:        dec(fmt.Sprintf("-%d", i+1)),
			Date:          day(2025, time.May, 1).AddDate(0, 0, i),
			Description:   fmt.Sprintf("Compra %02d", i),
			Tags:          "comida,super",
		})
	}
	return acc.ID
}

func TestFindAll_Pagination(t *testing.T) {
	svc := newTestService(t)
	seedListing(t, svc)

	page, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)

	page, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)

	page, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Data, defaultLimit)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, day(2025, time.May, 25), page.Data[0].Date)
}

func TestFindAll_SortAndTiebreak(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	first := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-10"), Date: day(2025, 1, 1)})
	second := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-10"), Date: day(2025, 1, 1)})
	third := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-5"), Date: day(2025, 1, 2)})

	page, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{SortBy: "amount", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, []int64{page.Data[0].ID, page.Data[1].ID, page.Data[2].ID})

	page, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{SortBy: "amount"})
	require.NoError(t, err)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{page.Data[0].ID, page.Data[1].ID, page.Data[2].ID})
}

func TestFindAll_RejectsUnknownSortAndLimit(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{SortBy: "amount; DROP TABLE accounts"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{SortOrder: "sideways"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Limit: 101})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Type: "TRANSFER"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestFindAll_DateDefaults(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	old := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-1"), Date: day(1999, 3, 1)})
	recent := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-1"), Date: day(2025, 6, 10)})
	createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subFuel, Amount: dec("-1"), Date: day(2025, 7, 1)})

	start := day(2025, 6, 1)
	page, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{StartDate: &start})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, recent.ID, page.Data[0].ID)

	end := day(2000, 1, 1)
	page, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{EndDate: &end})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, old.ID, page.Data[0].ID)

	from, to := day(2025, 6, 10), day(2025, 6, 10)
	page, err = svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestFindAll_Filters(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	other := createAccount(t, svc, testUserID, "Otra", "0")
	food := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSupermarket, Amount: dec("-80"), Description: "Super 100% natural", Tags: "comida,semanal"})
	fuel := createTransaction(t, svc, testUserID, TransactionInput{AccountID: other.ID, SubcategoryID: subFuel, Amount: dec("-40"), Description: "YPF", Notes: "super", Tags: "auto"})
	salary := createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subSalary, Amount: dec("1000"), Description: "Sueldo", IsRecurring: true, RecurrencePeriod: "monthly"})
	foreignAcc := createAccount(t, svc, otherUserID, "Ajena", "0")
	createTransaction(t, svc, otherUserID, TransactionInput{AccountID: foreignAcc.ID, SubcategoryID: subSupermarket, Amount: dec("-1"), Description: "Super"})

	ids := func(q TransactionQuery) []int64 {
		t.Helper()
		q.SortBy, q.SortOrder = "id", "ASC"
		page, err := svc.Transaction.FindAll(context.Background(), testUserID, q)
		require.NoError(t, err)
		result := make([]int64, len(page.Data))
		for i, tx := range page.Data {
			result[i] = tx.ID
		}
		return result
	}
	int64p := func(v int64) *int64 { return &v }
	boolp := func(v bool) *bool { return &v }
	decp := func(s string) *decimal.Decimal { d := dec(s); return &d }

	assert.Equal(t, []int64{food.ID, fuel.ID}, ids(TransactionQuery{Type: "GASTO"}))
	assert.Equal(t, []int64{salary.ID}, ids(TransactionQuery{Type: "ingreso"}))
	assert.Equal(t, []int64{food.ID}, ids(TransactionQuery{CategoryID: int64p(catFood)}))
	assert.Equal(t, []int64{fuel.ID}, ids(TransactionQuery{SubcategoryID: int64p(subFuel)}))
	assert.Empty(t, ids(TransactionQuery{SubcategoryID: int64p(subFuel), CategoryID: int64p(catFood)}))
	assert.Equal(t, []int64{fuel.ID}, ids(TransactionQuery{AccountID: int64p(other.ID)}))
	assert.Equal(t, []int64{salary.ID}, ids(TransactionQuery{IsRecurring: boolp(true)}))
	assert.Equal(t, []int64{salary.ID}, ids(TransactionQuery{RecurrencePeriod: "monthly"}))
	assert.Equal(t, []int64{food.ID, fuel.ID}, ids(TransactionQuery{MaxAmount: decp("0")}))
	assert.Equal(t, []int64{fuel.ID, salary.ID}, ids(TransactionQuery{MinAmount: decp("-50")}))
	assert.Equal(t, []int64{fuel.ID}, ids(TransactionQuery{MinAmount: decp("-50"), MaxAmount: decp("-40")}))
	// Search matches description only, never notes.
	assert.Equal(t, []int64{food.ID}, ids(TransactionQuery{Search: "Super"}))
	assert.Equal(t, []int64{food.ID}, ids(TransactionQuery{Search: "100%"}))
	assert.Empty(t, ids(TransactionQuery{Search: "1_0"}))
	// Only the first tag counts.
	assert.Equal(t, []int64{food.ID}, ids(TransactionQuery{Tags: []string{"comida", "auto"}}))
}

func TestFindAll_TypeNeverMixes(t *testing.T) {
	svc := newTestService(t)
	acc := createAccount(t, svc, testUserID, "Cuenta", "0")
	subs := []int64{subSupermarket, subFuel, subSalary}
	for i := 0; i < 30; i++ {
		createTransaction(t, svc, testUserID, TransactionInput{AccountID: acc.ID, SubcategoryID: subs[i%3], Amount: dec("1")})
	}

	page, err := svc.Transaction.FindAll(context.Background(), testUserID, TransactionQuery{Type: "GASTO", Limit: maxLimit})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Total)
	for _, tx := range page.Data {
		assert.Equal(t, category.TypeExpense, tx.Subcategory.Category.Type.Name)
	}
}

func TestFindAll_ResolvesFilter(t *testing.T) {
	svc := newTestService(t)
	start := day(2025, 1, 1)
	minAmount := dec("-10")

	filter, err := svc.Transaction.buildFilter(testUserID, TransactionQuery{
		StartDate: &start,
		MinAmount: &minAmount,
		Tags:      []string{" ", "viaje"},
		Page:      3,
		Limit:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, day(2025, 6, 15), *filter.EndDate)
	assert.True(t, filter.MaxAmount.Equal(transaction.MaxAmount))
	assert.Equal(t, "viaje", filter.Tag)
	assert.Equal(t, 40, filter.Offset)
	assert.Equal(t, transaction.SortByDate, filter.SortField)
	assert.Equal(t, transaction.SortDesc, filter.SortOrder)
}
