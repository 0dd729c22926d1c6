package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction a single ledger entry. Transfers are stored as two TRANSFER rows
// (OUT on the source account, IN on the destination) linked through RelatedTransactionID.
type Transaction struct {
	ID                   string          `json:"id" gorm:"primaryKey;size:36"`
	UserID               string          `json:"user_id" gorm:"size:36;index;not null"`
	AccountID            string          `json:"account_id" gorm:"size:36;index;not null"`
	CategoryID           *string         `json:"category_id" gorm:"size:36;index"`
	Type                 TransactionType `json:"type" gorm:"size:20;not null;index"`
	Amount               decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Description          *string         `json:"description" gorm:"type:text"`
	Date                 Date            `json:"date" gorm:"not null;index"`
	RelatedTransactionID *string         `json:"related_transaction_id" gorm:"size:36;index"`
	Leg                  TransferLeg     `json:"leg,omitempty" gorm:"size:3"`
	CreatedAt            time.Time       `json:"created_at"`

	Account  *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// IsTransfer reports whether t is one leg of a transfer
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}
