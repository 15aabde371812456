package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listing is an item under an auction carrying a base price and bid history.
// BasePrice and AvailableVolume are business facts never touched by settlement.
type Listing struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AuctionID       uint            `gorm:"not null;index" json:"auction_id"`
	Auction         Auction         `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"-"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     *string         `gorm:"type:text" json:"description,omitempty"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	AvailableVolume int             `gorm:"not null;default:1" json:"available_volume"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for Listing model
func (Listing) TableName() string {
	return "listings"
}

// ListingRequest represents a request to create or update a listing
type ListingRequest struct {
	AuctionID       uint            `json:"auction_id" binding:"required"`
	Title           string          `json:"title" binding:"required"`
	Description     *string         `json:"description"`
	BasePrice       decimal.Decimal `json:"base_price" binding:"required"`
	AvailableVolume *int            `json:"available_volume"`
}
