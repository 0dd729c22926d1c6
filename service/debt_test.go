package service

import (
	"context"
	"testing"

	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtService_CreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "debt@example.com")
	svc := NewDebtService(db)

	debt, err := svc.Create(ctx, user.ID, DebtInput{
		Type:       models.DebtTypeDebt,
		PersonName: "  Ali ",
		Amount:     amount("150.456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali", debt.PersonName)
	assert.Equal(t, "150.46", debt.Amount.StringFixed(2))
	assert.Equal(t, "UZS", debt.Currency)
	assert.Equal(t, models.DebtStatusOpen, debt.Status)
	assert.Nil(t, debt.DueDate)

	_, err = svc.Create(ctx, user.ID, DebtInput{Type: "LOAN", PersonName: "x", Amount: amount("1")})
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = svc.Create(ctx, user.ID, DebtInput{Type: models.DebtTypeDebt, PersonName: " ", Amount: amount("1")})
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = svc.Create(ctx, user.ID, DebtInput{Type: models.DebtTypeDebt, PersonName: "x", Amount: amount("0")})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestDebtService_CloseTwice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "close@example.com")
	svc := NewDebtService(db)

	debt, err := svc.Create(ctx, user.ID, DebtInput{Type: models.DebtTypeReceivable, PersonName: "Bob", Amount: amount("40")})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, user.ID, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DebtStatusClosed, closed.Status)

	_, err = svc.Close(ctx, user.ID, debt.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	got, err := svc.Get(ctx, user.ID, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DebtStatusClosed, got.Status)
}

func TestDebtService_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "list@example.com")
	other := createUser(t, db, "list2@example.com")
	svc := NewDebtService(db)

	mk := func(userID string, typ models.DebtType, name string) *models.Debt {
		d, err := svc.Create(ctx, userID, DebtInput{Type: typ, PersonName: name, Amount: amount("10")})
		require.NoError(t, err)
		return d
	}
	d1 := mk(user.ID, models.DebtTypeDebt, "A")
	mk(user.ID, models.DebtTypeReceivable, "B")
	mk(user.ID, models.DebtTypeReceivable, "C")
	mk(other.ID, models.DebtTypeDebt, "D")
	_, err := svc.Close(ctx, user.ID, d1.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, user.ID, DebtFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	receivable, err := svc.List(ctx, user.ID, DebtFilter{Type: models.DebtTypeReceivable})
	require.NoError(t, err)
	assert.Len(t, receivable, 2)

	closed, err := svc.List(ctx, user.ID, DebtFilter{Status: models.DebtStatusClosed})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "A", closed[0].PersonName)

	_, err = svc.Get(ctx, other.ID, d1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebtService_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "upd@example.com")
	svc := NewDebtService(db)

	debt, err := svc.Create(ctx, user.ID, DebtInput{Type: models.DebtTypeDebt, PersonName: "Ann", Amount: amount("10")})
	require.NoError(t, err)

	due := date("2024-09-01")
	newAmount := amount("12.5")
	updated, err := svc.Update(ctx, user.ID, debt.ID, DebtPatch{Amount: &newAmount, DueDate: &due, Description: strPtr("lunch")})
	require.NoError(t, err)
	assert.Equal(t, "12.50", updated.Amount.StringFixed(2))
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2024-09-01", updated.DueDate.String())
	require.NotNil(t, updated.Description)
	assert.Equal(t, "lunch", *updated.Description)

	_, err = svc.Update(ctx, user.ID, debt.ID, DebtPatch{PersonName: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	require.NoError(t, svc.Delete(ctx, user.ID, debt.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, debt.ID), ErrNotFound)
}

func TestDebtService_DueOpen(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "due@example.com")
	svc := NewDebtService(db)

	mk := func(name string, due *models.Date) *models.Debt {
		d, err := svc.Create(ctx, user.ID, DebtInput{Type: models.DebtTypeDebt, PersonName: name, Amount: amount("5"), DueDate: due})
		require.NoError(t, err)
		return d
	}
	overdue := date("2024-05-01")
	soon := date("2024-05-12")
	later := date("2024-06-30")
	closedDue := date("2024-05-11")

	mk("soon", &soon)
	mk("overdue", &overdue)
	mk("later", &later)
	mk("undated", nil)
	c := mk("closed", &closedDue)
	_, err := svc.Close(ctx, user.ID, c.ID)
	require.NoError(t, err)

	due, err := svc.DueOpen(ctx, date("2024-05-13"))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "overdue", due[0].PersonName)
	assert.Equal(t, "soon", due[1].PersonName)
}
