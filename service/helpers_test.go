package service

import (
	"context"
	"testing"

	"ledgerapi/database"
	"ledgerapi/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns a migrated private in-memory sqlite database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hash", FullName: "Test User"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, NewCategoryService(db).Seed(db, user.ID))
	return user
}

func createAccount(t *testing.T, db *gorm.DB, userID, name string, opening int64) *models.Account {
	t.Helper()
	account, err := NewAccountService(db).Create(context.Background(), userID, AccountInput{
		Name:    name,
		Type:    models.AccountTypeCard,
		Balance: decimal.NewFromInt(opening),
	})
	require.NoError(t, err)
	return account
}

func findCategory(t *testing.T, db *gorm.DB, userID, name string, typ models.CategoryType) *models.Category {
	t.Helper()
	var cat models.Category
	require.NoError(t, db.Where("user_id = ? AND name = ? AND type = ?", userID, name, typ).First(&cat).Error)
	return &cat
}

func balanceOf(t *testing.T, db *gorm.DB, accountID string) string {
	t.Helper()
	var account models.Account
	require.NoError(t, db.Where("id = ?", accountID).First(&account).Error)
	return account.Balance.StringFixed(2)
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string {
	return &s
}
