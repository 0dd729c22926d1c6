package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account a wallet, card or bank account holding a balance.
// Balance changes only through ledger operations.
type Account struct {
	ID        string          `json:"id" gorm:"primaryKey;size:36"`
	UserID    string          `json:"user_id" gorm:"size:36;index;not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Type      AccountType     `json:"type" gorm:"size:20;not null"`
	Currency  string          `json:"currency" gorm:"size:3;not null;default:UZS"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);not null;default:0"`
	Color     *string         `json:"color" gorm:"size:7"`
	Icon      *string         `json:"icon" gorm:"size:50"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
