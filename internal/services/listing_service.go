package services

import (
	"context"
	"errors"
	"fmt"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListingService struct {
	repo *repository.Repository
}

func NewListingService(repo *repository.Repository) *ListingService {
	return &ListingService{repo: repo}
}

func validateListingRequest(req *models.ListingRequest) error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if !req.BasePrice.GreaterThan(decimal.Zero) {
		return errors.New("base price must be greater than zero")
	}
	if req.AvailableVolume != nil && *req.AvailableVolume < 1 {
		return errors.New("available volume must be at least 1")
	}
	return nil
}

// CreateListing creates a new listing under an existing auction
func (s *ListingService) CreateListing(ctx context.Context, req *models.ListingRequest) (*models.Listing, error) {
	if err := validateListingRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetAuctionByID(ctx, req.AuctionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}

	volume := 1
	if req.AvailableVolume != nil {
		volume = *req.AvailableVolume
	}

	listing := &models.Listing{
		AuctionID:       req.AuctionID,
		Title:           req.Title,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		AvailableVolume: volume,
	}
	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// UpdateListing updates an existing live listing
func (s *ListingService) UpdateListing(ctx context.Context, listingID uint, req *models.ListingRequest) (*models.Listing, error) {
	if err := validateListingRequest(req); err != nil {
		return nil, err
	}

	listing, err := s.repo.GetListingByID(ctx, listingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	listing.AuctionID = req.AuctionID
	listing.Title = req.Title
	listing.Description = req.Description
	listing.BasePrice = req.BasePrice
	if req.AvailableVolume != nil {
		listing.AvailableVolume = *req.AvailableVolume
	}
	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

// GetListingsByAuction retrieves all live listings under an auction
func (s *ListingService) GetListingsByAuction(ctx context.Context, auctionID uint) ([]models.Listing, error) {
	return s.repo.GetListingsByAuction(ctx, auctionID)
}

// DeleteListing soft-deletes a listing and its bids
func (s *ListingService) DeleteListing(ctx context.Context, listingID uint) error {
	if _, err := s.repo.GetListingByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("failed to get listing: %w", err)
	}
	return s.repo.DeleteListing(ctx, listingID)
}
