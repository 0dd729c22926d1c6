package service

import (
	"testing"
	"time"

	"ledgerapi/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "type", "currency", "balance", "created_at"})
}

func TestBalanceEngine_Apply_LocksAccountRow(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts` WHERE id = .* FOR UPDATE").
		WillReturnRows(accountRows().AddRow("acc-1", "u1", "Card", "CARD", "UZS", "500.00", time.Now()))
	mock.ExpectExec("UPDATE `accounts` SET `balance`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return NewBalanceEngine().Apply(tx, "acc-1", decimal.NewFromInt(30), models.TransactionTypeExpense)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceEngine_Apply_MissingAccount(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts` .* FOR UPDATE").
		WillReturnRows(accountRows())
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return NewBalanceEngine().Apply(tx, "missing", decimal.NewFromInt(30), models.TransactionTypeIncome)
	})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceEngine_Reverse_MissingAccountIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts` .* FOR UPDATE").
		WillReturnRows(accountRows())
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return NewBalanceEngine().Reverse(tx, "gone", decimal.NewFromInt(30), models.TransactionTypeIncome)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceEngine_TransferIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)

	// row is still locked, but no UPDATE is issued
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `accounts` .* FOR UPDATE").
		WillReturnRows(accountRows().AddRow("acc-1", "u1", "Card", "CARD", "UZS", "10.00", time.Now()))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return NewBalanceEngine().Apply(tx, "acc-1", decimal.NewFromInt(5), models.TransactionTypeTransfer)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceEngine_CreditDebitAndReverseLeg(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "engine@example.com")
	account := createAccount(t, db, user.ID, "Wallet", 100)
	engine := NewBalanceEngine()

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := engine.Credit(tx, account.ID, amount("25.50")); err != nil {
			return err
		}
		return engine.Debit(tx, account.ID, amount("10.25"))
	}))
	assert.Equal(t, "115.25", balanceOf(t, db, account.ID))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return engine.ReverseLeg(tx, account.ID, amount("15.25"), models.TransferLegIn)
	}))
	assert.Equal(t, "100.00", balanceOf(t, db, account.ID))

	// negative balances are allowed
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return engine.Debit(tx, account.ID, amount("150"))
	}))
	assert.Equal(t, "-50.00", balanceOf(t, db, account.ID))
}
