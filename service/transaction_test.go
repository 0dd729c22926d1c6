package service

import (
	"context"
	"fmt"
	"testing"

	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CreateAndDeleteKeepBalance(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "balance@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	svc := NewTransactionService(db)

	income, err := svc.Create(ctx, user.ID, TransactionInput{
		AccountID: account.ID, Type: models.TransactionTypeIncome, Amount: amount("100"), Date: date("2024-01-10"),
	})
	require.NoError(t, err)
	expense, err := svc.Create(ctx, user.ID, TransactionInput{
		AccountID: account.ID, Type: models.TransactionTypeExpense, Amount: amount("30"), Date: date("2024-01-11"),
	})
	require.NoError(t, err)
	assert.Equal(t, "70.00", balanceOf(t, db, account.ID))

	require.NoError(t, svc.Delete(ctx, user.ID, expense.ID))
	assert.Equal(t, "100.00", balanceOf(t, db, account.ID))

	_, err = svc.Get(ctx, user.ID, expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, user.ID, income.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Account)
	assert.Equal(t, "Card", got.Account.Name)
}

func TestTransactionService_CreateReturnsCategory(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cat@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	food := findCategory(t, db, user.ID, "Food", models.CategoryTypeExpense)

	txn, err := NewTransactionService(db).Create(context.Background(), user.ID, TransactionInput{
		AccountID:   account.ID,
		CategoryID:  &food.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      amount("12.345"),
		Description: strPtr("lunch"),
		Date:        date("2024-02-01"),
	})
	require.NoError(t, err)
	require.NotNil(t, txn.Category)
	assert.Equal(t, "Food", txn.Category.Name)
	assert.Equal(t, "12.35", txn.Amount.StringFixed(2))
	assert.Equal(t, "2024-02-01", txn.Date.String())
	assert.Equal(t, "-12.35", balanceOf(t, db, account.ID))
}

func TestTransactionService_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "v@example.com")
	other := createUser(t, db, "other@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	foreign := createAccount(t, db, other.ID, "Foreign", 0)
	foreignCat := findCategory(t, db, other.ID, "Food", models.CategoryTypeExpense)
	svc := NewTransactionService(db)

	base := TransactionInput{AccountID: account.ID, Type: models.TransactionTypeExpense, Amount: amount("1"), Date: date("2024-01-01")}

	in := base
	in.Type = models.TransactionTypeTransfer
	_, err := svc.Create(ctx, user.ID, in)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	in = base
	in.Amount = amount("0")
	_, err = svc.Create(ctx, user.ID, in)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	in = base
	in.AccountID = foreign.ID
	_, err = svc.Create(ctx, user.ID, in)
	assert.ErrorIs(t, err, ErrNotFound)

	in = base
	in.CategoryID = &foreignCat.ID
	_, err = svc.Create(ctx, user.ID, in)
	assert.ErrorIs(t, err, ErrNotFound)

	// nothing was written
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, "0.00", balanceOf(t, db, account.ID))
}

func TestTransactionService_UpdateAmount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "upd@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	svc := NewTransactionService(db)

	txn, err := svc.Create(ctx, user.ID, TransactionInput{
		AccountID: account.ID, Type: models.TransactionTypeExpense, Amount: amount("50"), Date: date("2024-01-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-50.00", balanceOf(t, db, account.ID))

	newAmount := amount("80")
	updated, err := svc.Update(ctx, user.ID, txn.ID, TransactionPatch{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, "80.00", updated.Amount.StringFixed(2))
	assert.Equal(t, "-80.00", balanceOf(t, db, account.ID))

	// type flip: EXPENSE 80 -> INCOME 80
	income := models.TransactionTypeIncome
	_, err = svc.Update(ctx, user.ID, txn.ID, TransactionPatch{Type: &income})
	require.NoError(t, err)
	assert.Equal(t, "80.00", balanceOf(t, db, account.ID))
}

func TestTransactionService_UpdateReassignsAccount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "move@example.com")
	a := createAccount(t, db, user.ID, "A", 0)
	b := createAccount(t, db, user.ID, "B", 0)
	svc := NewTransactionService(db)

	txn, err := svc.Create(ctx, user.ID, TransactionInput{
		AccountID: a.ID, Type: models.TransactionTypeExpense, Amount: amount("20"), Date: date("2024-01-01"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, txn.ID, TransactionPatch{AccountID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.AccountID)
	assert.Equal(t, "0.00", balanceOf(t, db, a.ID))
	assert.Equal(t, "-20.00", balanceOf(t, db, b.ID))
}

func TestTransactionService_UpdateRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "rej@example.com")
	other := createUser(t, db, "rej2@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	foreign := createAccount(t, db, other.ID, "Foreign", 0)
	svc := NewTransactionService(db)

	txn, err := svc.Create(ctx, user.ID, TransactionInput{
		AccountID: account.ID, Type: models.TransactionTypeIncome, Amount: amount("10"), Date: date("2024-01-01"),
	})
	require.NoError(t, err)

	transfer := models.TransactionType("TRANSFER")
	_, err = svc.Update(ctx, user.ID, txn.ID, TransactionPatch{Type: &transfer})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = svc.Update(ctx, user.ID, txn.ID, TransactionPatch{AccountID: &foreign.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, other.ID, txn.ID, TransactionPatch{Description: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	// rolled back, balances untouched
	assert.Equal(t, "10.00", balanceOf(t, db, account.ID))
	assert.Equal(t, "0.00", balanceOf(t, db, foreign.ID))
}

func TestTransactionService_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "page@example.com")
	account := createAccount(t, db, user.ID, "Card", 0)
	svc := NewTransactionService(db)

	for i := 1; i <= 25; i++ {
		_, err := svc.Create(ctx, user.ID, TransactionInput{
			AccountID: account.ID,
			Type:      models.TransactionTypeExpense,
			Amount:    amount("1"),
			Date:      date(fmt.Sprintf("2024-03-%02d", i)),
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, user.ID, TransactionFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Size)
	// newest first: page 2 starts at the 11th newest date
	assert.Equal(t, "2024-03-15", page.Items[0].Date.String())

	last, err := svc.List(ctx, user.ID, TransactionFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)

	from, to := date("2024-03-05"), date("2024-03-09")
	filtered, err := svc.List(ctx, user.ID, TransactionFilter{DateFrom: &from, DateTo: &to}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), filtered.Total)
	assert.Equal(t, DefaultPageSize, filtered.Size)

	none, err := svc.List(ctx, user.ID, TransactionFilter{Type: models.TransactionTypeIncome}, 1, 500)
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.Empty(t, none.Items)
	assert.Equal(t, MaxPageSize, none.Size)
}
