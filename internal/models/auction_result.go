package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionResult is the write-once outcome record for a settled listing.
// The unique index on ListingID is the idempotency guard: at most one result
// per listing is ever durable, even across overlapping settlement passes.
// Listings that close with no bids get no row at all.
type AuctionResult struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID    uint            `gorm:"not null;uniqueIndex" json:"listing_id"`
	Listing      Listing         `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	BidID        uint            `gorm:"not null;index" json:"bid_id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	ListingTitle string          `gorm:"size:255;not null" json:"listing_title"`
	WinnerName   string          `gorm:"size:255;not null" json:"winner_name"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name for AuctionResult model
func (AuctionResult) TableName() string {
	return "auction_results"
}
