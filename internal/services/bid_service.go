package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BidService struct {
	repo *repository.Repository
}

func NewBidService(repo *repository.Repository) *BidService {
	return &BidService{repo: repo}
}

// PlaceBid records a bid on a listing. Bids on listings whose auction has
// already ended are rejected here; settlement never has to lock the ledger
// against late bids because they can't get in.
func (s *BidService) PlaceBid(ctx context.Context, req *models.CreateBidRequest) (*models.Bid, error) {
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, errors.New("bid amount must be greater than zero")
	}

	auction, err := s.repo.GetListingAuction(ctx, req.ListingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	if auction.IsClosed(time.Now()) {
		return nil, ErrBiddingClosed
	}

	bid := &models.Bid{
		ListingID: req.ListingID,
		UserID:    req.UserID,
		Amount:    req.Amount,
	}
	if err := s.repo.CreateBid(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}
	return bid, nil
}

// GetBids retrieves all live bids joined with user and listing
func (s *BidService) GetBids(ctx context.Context) ([]models.BidRow, error) {
	return s.repo.GetBidRows(ctx)
}

// GetActiveBids retrieves live bids on currently active auctions
func (s *BidService) GetActiveBids(ctx context.Context) ([]models.BidRow, error) {
	return s.repo.GetActiveBidRows(ctx, time.Now())
}

// GetUserBids retrieves live bids placed by the user with the given phone number
func (s *BidService) GetUserBids(ctx context.Context, phoneNumber string) ([]models.BidRow, error) {
	return s.repo.GetUserBidRows(ctx, phoneNumber)
}
