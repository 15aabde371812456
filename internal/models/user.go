package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a bidder reachable over WhatsApp
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PhoneNumber string         `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// CreateUserRequest represents a request to create or refresh a user.
// Creation is an upsert keyed by phone number.
type CreateUserRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Name        string `json:"name" binding:"required"`
}
