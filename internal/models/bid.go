package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bid is a user's monetary offer on a listing. Bids are immutable once
// created, apart from soft delete.
type Bid struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ListingID uint            `gorm:"not null;index" json:"listing_id"`
	Listing   Listing         `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for Bid model
func (Bid) TableName() string {
	return "bids"
}

// CreateBidRequest represents a request to place a bid
type CreateBidRequest struct {
	ListingID uint            `json:"listing_id" binding:"required"`
	UserID    uint            `json:"user_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// BidRow is the live-bid projection joined with user and listing, as consumed
// by winner selection.
type BidRow struct {
	BidID        uint            `json:"bid_id"`
	ListingID    uint            `json:"listing_id"`
	UserID       uint            `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	UserName     string          `json:"name"`
	ListingTitle string          `json:"listing_title"`
	CreatedAt    time.Time       `json:"created_at"`
}
