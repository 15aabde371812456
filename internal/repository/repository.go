package repository

import (
	"context"
	"time"

	"auction-market/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser updates an existing user
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// GetUserByPhone retrieves a live user by phone number
func (r *Repository) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all live users
func (r *Repository) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser soft-deletes a user and their bids
func (r *Repository) DeleteUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// CreateAuction creates a new auction
func (r *Repository) CreateAuction(ctx context.Context, auction *models.Auction) error {
	return r.db.WithContext(ctx).Create(auction).Error
}

// UpdateAuction updates an existing auction
func (r *Repository) UpdateAuction(ctx context.Context, auction *models.Auction) error {
	return r.db.WithContext(ctx).Save(auction).Error
}

// GetAuctionByID retrieves a live auction by ID
func (r *Repository) GetAuctionByID(ctx context.Context, auctionID uint) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).First(&auction, auctionID).Error
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// GetAuctions retrieves all live auctions
func (r *Repository) GetAuctions(ctx context.Context) ([]models.Auction, error) {
	var auctions []models.Auction
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// DeleteAuction soft-deletes an auction together with its listings and their
// bids, in one transaction. Listings are exclusively owned by the auction.
func (r *Repository) DeleteAuction(ctx context.Context, auctionID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listingIDs []uint
		if err := tx.Model(&models.Listing{}).
			Where("auction_id = ?", auctionID).
			Pluck("id", &listingIDs).Error; err != nil {
			return err
		}

		if len(listingIDs) > 0 {
			if err := tx.Where("listing_id IN ?", listingIDs).Delete(&models.Bid{}).Error; err != nil {
				return err
			}
			if err := tx.Where("auction_id = ?", auctionID).Delete(&models.Listing{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Auction{}, auctionID).Error
	})
}

// CreateListing creates a new listing
func (r *Repository) CreateListing(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// UpdateListing updates an existing listing
func (r *Repository) UpdateListing(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// GetListingByID retrieves a live listing by ID
func (r *Repository) GetListingByID(ctx context.Context, listingID uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).First(&listing, listingID).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingsByAuction retrieves all live listings under an auction
func (r *Repository) GetListingsByAuction(ctx context.Context, auctionID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// DeleteListing soft-deletes a listing together with its bids
func (r *Repository) DeleteListing(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, listingID).Error
	})
}

// CreateBid creates a new bid
func (r *Repository) CreateBid(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// GetListingAuction retrieves the live auction owning a listing.
// Used by the bid write path to reject bids on closed auctions.
func (r *Repository) GetListingAuction(ctx context.Context, listingID uint) (*models.Auction, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).First(&listing, listingID).Error
	if err != nil {
		return nil, err
	}

	var auction models.Auction
	err = r.db.WithContext(ctx).First(&auction, listing.AuctionID).Error
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// GetBidRows retrieves all live bids joined with their user and listing
func (r *Repository) GetBidRows(ctx context.Context) ([]models.BidRow, error) {
	var rows []models.BidRow
	err := r.bidRowQuery(ctx).
		Order("bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetUserBidRows retrieves all live bids placed by the user with the given phone number
func (r *Repository) GetUserBidRows(ctx context.Context, phoneNumber string) ([]models.BidRow, error) {
	var rows []models.BidRow
	err := r.bidRowQuery(ctx).
		Where("users.phone_number = ?", phoneNumber).
		Order("bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetActiveBidRows retrieves live bids on listings whose auction is currently
// accepting bids at the given instant
func (r *Repository) GetActiveBidRows(ctx context.Context, now time.Time) ([]models.BidRow, error) {
	var rows []models.BidRow
	err := r.bidRowQuery(ctx).
		Joins("JOIN auctions ON auctions.id = listings.auction_id AND auctions.deleted_at IS NULL").
		Where("auctions.start_time <= ? AND auctions.end_time >= ?", now, now).
		Order("bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// bidRowQuery builds the live-bid projection joined with users and listings.
// The joined tables need explicit deleted_at filters; gorm's soft-delete scope
// only covers the bids table itself.
func (r *Repository) bidRowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Select("bids.id AS bid_id, bids.listing_id, bids.user_id, bids.amount, bids.created_at, users.name AS user_name, listings.title AS listing_title").
		Joins("JOIN users ON users.id = bids.user_id AND users.deleted_at IS NULL").
		Joins("JOIN listings ON listings.id = bids.listing_id AND listings.deleted_at IS NULL")
}
