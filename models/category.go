package models

import "gorm.io/gorm"

// Category groups transactions for analytics and budgets.
// UserID is nullable in the schema but every row written by this service has an owner.
type Category struct {
	ID        string       `json:"id" gorm:"primaryKey;size:36"`
	UserID    *string      `json:"user_id" gorm:"size:36;index"`
	Name      string       `json:"name" gorm:"size:100;not null"`
	Type      CategoryType `json:"type" gorm:"size:20;not null"`
	Icon      *string      `json:"icon" gorm:"size:50"`
	Color     *string      `json:"color" gorm:"size:7"`
	IsDefault bool         `json:"is_default" gorm:"not null;default:false"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
