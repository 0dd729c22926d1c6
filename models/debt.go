package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Debt money owed by or to the user; tracked outside account balances
type Debt struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	UserID      string          `json:"user_id" gorm:"size:36;index;not null"`
	Type        DebtType        `json:"type" gorm:"size:20;not null"`
	PersonName  string          `json:"person_name" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;not null;default:UZS"`
	Description *string         `json:"description" gorm:"type:text"`
	DueDate     *Date           `json:"due_date"`
	Status      DebtStatus      `json:"status" gorm:"size:20;not null;default:OPEN;index"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Debt) TableName() string {
	return "debts"
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	if d.Status == "" {
		d.Status = DebtStatusOpen
	}
	return nil
}
