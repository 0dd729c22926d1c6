package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget planned amount for a month, for one category or (CategoryID nil) the whole type
type Budget struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	UserID        string          `json:"user_id" gorm:"size:36;not null;uniqueIndex:uq_budget_user_cat_type_period,priority:1"`
	CategoryID    *string         `json:"category_id" gorm:"size:36;uniqueIndex:uq_budget_user_cat_type_period,priority:2"`
	Type          CategoryType    `json:"type" gorm:"size:20;not null;uniqueIndex:uq_budget_user_cat_type_period,priority:3"`
	Month         int             `json:"month" gorm:"not null;uniqueIndex:uq_budget_user_cat_type_period,priority:4"`
	Year          int             `json:"year" gorm:"not null;uniqueIndex:uq_budget_user_cat_type_period,priority:5"`
	PlannedAmount decimal.Decimal `json:"planned_amount" gorm:"type:decimal(15,2);not null"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Budget) TableName() string {
	return "budgets"
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}
