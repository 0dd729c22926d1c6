package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnums_Valid(t *testing.T) {
	assert.True(t, AccountTypeEWallet.Valid())
	assert.False(t, AccountType("CRYPTO").Valid())

	assert.True(t, TransactionTypeTransfer.Valid())
	assert.False(t, TransactionType("income").Valid())

	assert.True(t, CategoryTypeExpense.Valid())
	assert.False(t, CategoryType("TRANSFER").Valid())

	assert.True(t, DebtTypeReceivable.Valid())
	assert.True(t, DebtStatusClosed.Valid())
	assert.False(t, DebtStatus("PAID").Valid())

	assert.True(t, PeriodYear.Valid())
	assert.False(t, Period("day").Valid())
}

func TestSigns(t *testing.T) {
	assert.Equal(t, 1, TransactionTypeIncome.Sign())
	assert.Equal(t, -1, TransactionTypeExpense.Sign())
	assert.Equal(t, 0, TransactionTypeTransfer.Sign())

	assert.Equal(t, -1, TransferLegOut.Sign())
	assert.Equal(t, 1, TransferLegIn.Sign())
	assert.Equal(t, 0, TransferLeg("").Sign())
}

func TestCategoryType_TransactionType(t *testing.T) {
	assert.Equal(t, TransactionTypeExpense, CategoryTypeExpense.TransactionType())
	assert.Equal(t, TransactionTypeIncome, CategoryTypeIncome.TransactionType())
}
