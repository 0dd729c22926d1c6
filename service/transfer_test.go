package service

import (
	"context"
	"testing"

	"ledgerapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferService_Transfer(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "tr@example.com")
	a := createAccount(t, db, user.ID, "A", 500)
	b := createAccount(t, db, user.ID, "B", 200)

	result, err := NewTransferService(db).Transfer(ctx, user.ID, TransferInput{
		FromAccountID: a.ID,
		ToAccountID:   b.ID,
		Amount:        amount("100"),
		Date:          date("2024-04-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, "400.00", balanceOf(t, db, a.ID))
	assert.Equal(t, "300.00", balanceOf(t, db, b.ID))

	out, in := result.Outgoing, result.Incoming
	assert.Equal(t, models.TransactionTypeTransfer, out.Type)
	assert.Equal(t, models.TransactionTypeTransfer, in.Type)
	assert.Equal(t, models.TransferLegOut, out.Leg)
	assert.Equal(t, models.TransferLegIn, in.Leg)
	require.NotNil(t, out.RelatedTransactionID)
	require.NotNil(t, in.RelatedTransactionID)
	assert.Equal(t, in.ID, *out.RelatedTransactionID)
	assert.Equal(t, out.ID, *in.RelatedTransactionID)
	assert.Equal(t, out.Amount.StringFixed(2), in.Amount.StringFixed(2))
	assert.Equal(t, out.Date.String(), in.Date.String())
	assert.Equal(t, "Transfer out", *out.Description)
	assert.Equal(t, "Transfer in", *in.Description)
	require.NotNil(t, out.Account)
	assert.Equal(t, "A", out.Account.Name)
}

func TestTransferService_SameAccount(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "same@example.com")
	a := createAccount(t, db, user.ID, "A", 500)

	_, err := NewTransferService(db).Transfer(context.Background(), user.ID, TransferInput{
		FromAccountID: a.ID, ToAccountID: a.ID, Amount: amount("10"), Date: date("2024-04-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, "500.00", balanceOf(t, db, a.ID))
}

func TestTransferService_MissingDestinationRollsBack(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "miss@example.com")
	other := createUser(t, db, "miss2@example.com")
	a := createAccount(t, db, user.ID, "A", 500)
	foreign := createAccount(t, db, other.ID, "Foreign", 0)
	svc := NewTransferService(db)

	_, err := svc.Transfer(context.Background(), user.ID, TransferInput{
		FromAccountID: a.ID, ToAccountID: "does-not-exist", Amount: amount("10"), Date: date("2024-04-01"),
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "destination account not found", err.Error())

	_, err = svc.Transfer(context.Background(), user.ID, TransferInput{
		FromAccountID: foreign.ID, ToAccountID: a.ID, Amount: amount("10"), Date: date("2024-04-01"),
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "source account not found", err.Error())

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, "500.00", balanceOf(t, db, a.ID))
	assert.Equal(t, "0.00", balanceOf(t, db, foreign.ID))
}

func TestTransactionService_DeleteTransferLegRemovesPair(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "pair@example.com")
	a := createAccount(t, db, user.ID, "A", 500)
	b := createAccount(t, db, user.ID, "B", 200)

	result, err := NewTransferService(db).Transfer(ctx, user.ID, TransferInput{
		FromAccountID: a.ID, ToAccountID: b.ID, Amount: amount("100"), Date: date("2024-04-01"),
	})
	require.NoError(t, err)

	txns := NewTransactionService(db)

	// only description and category are editable on a leg
	newAmount := amount("5")
	_, err = txns.Update(ctx, user.ID, result.Incoming.ID, TransactionPatch{Amount: &newAmount})
	assert.ErrorIs(t, err, ErrInvalidOperation)
	updated, err := txns.Update(ctx, user.ID, result.Incoming.ID, TransactionPatch{Description: strPtr("rent share")})
	require.NoError(t, err)
	assert.Equal(t, "rent share", *updated.Description)

	require.NoError(t, txns.Delete(ctx, user.ID, result.Incoming.ID))

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, "500.00", balanceOf(t, db, a.ID))
	assert.Equal(t, "200.00", balanceOf(t, db, b.ID))
}
