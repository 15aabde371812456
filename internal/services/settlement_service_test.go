package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DB so every pooled connection sees the same tables,
	// isolated per test by name.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Auction{},
		&models.Listing{},
		&models.Bid{},
		&models.AuctionResult{},
	)
	require.NoError(t, err)

	return db
}

// fakeNotifier records every send and can be told to fail for a recipient's
// message containing a given substring.
type fakeNotifier struct {
	sent     []string
	failWhen func(message string) bool
}

func (f *fakeNotifier) Send(_ context.Context, _, message string) error {
	if f.failWhen != nil && f.failWhen(message) {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, message)
	return nil
}

func createUser(t *testing.T, db *gorm.DB, name, phone string) *models.User {
	t.Helper()
	user := &models.User{Name: name, PhoneNumber: phone}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createClosedAuction(t *testing.T, db *gorm.DB, title string) *models.Auction {
	t.Helper()
	auction := &models.Auction{
		Title:     title,
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(auction).Error)
	return auction
}

func createListing(t *testing.T, db *gorm.DB, auctionID uint, title string) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		AuctionID: auctionID,
		Title:     title,
		BasePrice: decimal.NewFromInt(50),
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func createBid(t *testing.T, db *gorm.DB, listingID, userID uint, amount string) *models.Bid {
	t.Helper()
	bid := &models.Bid{
		ListingID: listingID,
		UserID:    userID,
		Amount:    decimal.RequireFromString(amount),
	}
	require.NoError(t, db.Create(bid).Error)
	return bid
}

func TestSettleClosedAuctions_WinnerAndNoBid(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewSettlementService(repo, notifier, "+254700000000")

	user1 := createUser(t, db, "Amina", "+254700000001")
	user2 := createUser(t, db, "Brian", "+254700000002")
	user3 := createUser(t, db, "Carol", "+254700000003")

	auction := createClosedAuction(t, db, "February Livestock")
	l1 := createListing(t, db, auction.ID, "Dairy Cow")
	l2 := createListing(t, db, auction.ID, "Goat Pair")

	createBid(t, db, l1.ID, user1.ID, "100.00")
	tieFirst := createBid(t, db, l1.ID, user2.ID, "150.00")
	createBid(t, db, l1.ID, user3.ID, "150.00")

	summary, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Auctions)
	assert.Equal(t, 1, summary.Settled)
	assert.Equal(t, 1, summary.NoBids)
	assert.Equal(t, 0, summary.NotifyFailures)

	// L1: exactly one result, referencing the lowest bid ID among the tied 150.00 bids
	var results []models.AuctionResult
	require.NoError(t, db.Find(&results).Error)
	require.Len(t, results, 1)
	assert.Equal(t, l1.ID, results[0].ListingID)
	assert.Equal(t, tieFirst.ID, results[0].BidID)
	assert.Equal(t, user2.ID, results[0].UserID)
	assert.True(t, results[0].Amount.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, "Brian", results[0].WinnerName)

	// One winner message for L1, one no-bid message for L2
	require.Len(t, notifier.sent, 2)
	assert.Contains(t, notifier.sent[0], "Dairy Cow")
	assert.Contains(t, notifier.sent[0], "Brian")
	assert.Contains(t, notifier.sent[0], "150.00")
	assert.Contains(t, notifier.sent[1], "Goat Pair")
	assert.Contains(t, notifier.sent[1], "no bids")

	// No result row for the no-bid listing
	var count int64
	require.NoError(t, db.Model(&models.AuctionResult{}).Where("listing_id = ?", l2.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSettleClosedAuctions_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewSettlementService(repo, notifier, "+254700000000")

	user := createUser(t, db, "Amina", "+254700000001")
	auction := createClosedAuction(t, db, "One Shot")
	listing := createListing(t, db, auction.ID, "Dairy Cow")
	createBid(t, db, listing.ID, user.ID, "200.00")

	_, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)

	// Second pass is a no-op: the auction carries the settled watermark
	summary, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Auctions)

	// Even with the watermark cleared (simulating a crash between recording
	// and stamping), the existing result is detected and skipped, not
	// duplicated and not re-announced.
	require.NoError(t, db.Model(&models.Auction{}).Where("id = ?", auction.ID).Update("settled_at", nil).Error)

	summary, err = service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Settled)

	var count int64
	require.NoError(t, db.Model(&models.AuctionResult{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Len(t, notifier.sent, 1)
}

func TestSettleClosedAuctions_SoftDeletedBidExcluded(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewSettlementService(repo, notifier, "+254700000000")

	user1 := createUser(t, db, "Amina", "+254700000001")
	user2 := createUser(t, db, "Brian", "+254700000002")
	auction := createClosedAuction(t, db, "Retractions")
	listing := createListing(t, db, auction.ID, "Dairy Cow")

	createBid(t, db, listing.ID, user1.ID, "120.00")
	retracted := createBid(t, db, listing.ID, user2.ID, "500.00")
	require.NoError(t, db.Delete(retracted).Error)

	_, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)

	var result models.AuctionResult
	require.NoError(t, db.First(&result).Error)
	assert.Equal(t, user1.ID, result.UserID)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("120.00")))
}

func TestSettleClosedAuctions_OpenAuctionUntouched(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{}
	service := NewSettlementService(repo, notifier, "+254700000000")

	user := createUser(t, db, "Amina", "+254700000001")
	auction := &models.Auction{
		Title:     "Still Running",
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(auction).Error)
	listing := createListing(t, db, auction.ID, "Dairy Cow")
	createBid(t, db, listing.ID, user.ID, "300.00")

	summary, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Auctions)

	var count int64
	require.NoError(t, db.Model(&models.AuctionResult{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, notifier.sent)
}

func TestSettleClosedAuctions_NotificationFailureDoesNotBlock(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	notifier := &fakeNotifier{
		failWhen: func(message string) bool {
			return strings.Contains(message, "Dairy Cow")
		},
	}
	service := NewSettlementService(repo, notifier, "+254700000000")

	user := createUser(t, db, "Amina", "+254700000001")
	auction := createClosedAuction(t, db, "Flaky Channel")
	l1 := createListing(t, db, auction.ID, "Dairy Cow")
	l2 := createListing(t, db, auction.ID, "Goat Pair")
	createBid(t, db, l1.ID, user.ID, "100.00")
	createBid(t, db, l2.ID, user.ID, "80.00")

	summary, err := service.SettleClosedAuctions(context.Background())
	require.NoError(t, err)

	// Both listings are recorded even though the first send failed
	assert.Equal(t, 2, summary.Settled)
	assert.Equal(t, 1, summary.NotifyFailures)

	var count int64
	require.NoError(t, db.Model(&models.AuctionResult{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Only the second listing's message got through
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Goat Pair")
}
