package services

import (
	"context"
	"testing"
	"time"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBid_AcceptedWhileAuctionOpen(t *testing.T) {
	db := setupTestDB(t)
	service := NewBidService(repository.NewRepository(db))

	user := createUser(t, db, "Amina", "+254700000001")
	auction := &models.Auction{
		Title:     "Open",
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(auction).Error)
	listing := createListing(t, db, auction.ID, "Dairy Cow")

	bid, err := service.PlaceBid(context.Background(), &models.CreateBidRequest{
		ListingID: listing.ID,
		UserID:    user.ID,
		Amount:    decimal.RequireFromString("75.00"),
	})
	require.NoError(t, err)
	assert.NotZero(t, bid.ID)
}

func TestPlaceBid_RejectedAfterAuctionEnds(t *testing.T) {
	db := setupTestDB(t)
	service := NewBidService(repository.NewRepository(db))

	user := createUser(t, db, "Amina", "+254700000001")
	auction := createClosedAuction(t, db, "Ended")
	listing := createListing(t, db, auction.ID, "Dairy Cow")

	_, err := service.PlaceBid(context.Background(), &models.CreateBidRequest{
		ListingID: listing.ID,
		UserID:    user.ID,
		Amount:    decimal.RequireFromString("75.00"),
	})
	assert.ErrorIs(t, err, ErrBiddingClosed)

	var count int64
	require.NoError(t, db.Model(&models.Bid{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceBid_Validation(t *testing.T) {
	db := setupTestDB(t)
	service := NewBidService(repository.NewRepository(db))
	ctx := context.Background()

	// Non-positive amount
	_, err := service.PlaceBid(ctx, &models.CreateBidRequest{
		ListingID: 1,
		UserID:    1,
		Amount:    decimal.Zero,
	})
	assert.Error(t, err)

	// Unknown listing
	_, err = service.PlaceBid(ctx, &models.CreateBidRequest{
		ListingID: 999,
		UserID:    1,
		Amount:    decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}
