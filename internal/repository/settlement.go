package repository

import (
	"context"
	"time"

	"auction-market/internal/models"

	"gorm.io/gorm/clause"
)

// GetClosedUnsettledAuctions retrieves live auctions whose bidding window has
// ended and that have not yet been marked settled.
func (r *Repository) GetClosedUnsettledAuctions(ctx context.Context, now time.Time) ([]models.Auction, error) {
	var auctions []models.Auction
	err := r.db.WithContext(ctx).
		Where("end_time < ? AND settled_at IS NULL", now).
		Order("end_time ASC").
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// GetListingsByAuctionIDs retrieves all live listings under the given auctions
func (r *Repository) GetListingsByAuctionIDs(ctx context.Context, auctionIDs []uint) ([]models.Listing, error) {
	if len(auctionIDs) == 0 {
		return nil, nil
	}
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("auction_id IN ?", auctionIDs).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// GetLiveBidRowsByListingIDs retrieves live bids on the given listings joined
// with user and listing, ordered by bid ID for deterministic winner selection.
func (r *Repository) GetLiveBidRowsByListingIDs(ctx context.Context, listingIDs []uint) ([]models.BidRow, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	var rows []models.BidRow
	err := r.bidRowQuery(ctx).
		Where("bids.listing_id IN ?", listingIDs).
		Order("bids.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetSettledListingIDs returns which of the given listings already have an
// auction result.
func (r *Repository) GetSettledListingIDs(ctx context.Context, listingIDs []uint) (map[uint]struct{}, error) {
	settled := make(map[uint]struct{})
	if len(listingIDs) == 0 {
		return settled, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.AuctionResult{}).
		Where("listing_id IN ?", listingIDs).
		Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		settled[id] = struct{}{}
	}
	return settled, nil
}

// CreateAuctionResult inserts the settlement record for a listing. The write
// is transactional and races are resolved by the unique index on listing_id:
// a conflicting insert affects zero rows and is reported as created=false.
func (r *Repository) CreateAuctionResult(ctx context.Context, result *models.AuctionResult) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listing_id"}},
			DoNothing: true,
		}).
		Create(result)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkAuctionSettled stamps the settlement watermark on an auction so later
// passes skip it. Only called after every listing in the pass was processed.
func (r *Repository) MarkAuctionSettled(ctx context.Context, auctionID uint, settledAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Auction{}).
		Where("id = ?", auctionID).
		Update("settled_at", settledAt).Error
}

// GetAuctionResultRows retrieves all settlement records joined with listing
// and winner for display.
func (r *Repository) GetAuctionResultRows(ctx context.Context) ([]models.AuctionResult, error) {
	var results []models.AuctionResult
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
