package models

import (
	"time"

	"gorm.io/gorm"
)

// Auction is a titled time window grouping listings for bidding.
// There is no stored "closed" flag; closed is always derived from EndTime.
type Auction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	StartTime time.Time      `gorm:"not null" json:"start_time"`
	EndTime   time.Time      `gorm:"not null;index" json:"end_time"`
	SettledAt *time.Time     `gorm:"index" json:"settled_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Auction model
func (Auction) TableName() string {
	return "auctions"
}

// IsClosed reports whether the bidding window has ended at the given instant.
func (a *Auction) IsClosed(now time.Time) bool {
	return a.EndTime.Before(now)
}

// IsActive reports whether bids are accepted at the given instant.
func (a *Auction) IsActive(now time.Time) bool {
	return !a.StartTime.After(now) && !a.IsClosed(now)
}

// AuctionRequest represents a request to create or update an auction
type AuctionRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
