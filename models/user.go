package models

import (
	"time"

	"gorm.io/gorm"
)

// User account holder
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	FullName  string    `json:"full_name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}
