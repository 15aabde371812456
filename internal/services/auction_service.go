package services

import (
	"context"
	"errors"
	"fmt"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"gorm.io/gorm"
)

type AuctionService struct {
	repo *repository.Repository
}

func NewAuctionService(repo *repository.Repository) *AuctionService {
	return &AuctionService{repo: repo}
}

func validateAuctionRequest(req *models.AuctionRequest) error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return errors.New("start time and end time are required")
	}
	if !req.StartTime.Before(req.EndTime) {
		return errors.New("start time must be before end time")
	}
	return nil
}

// CreateAuction creates a new auction
func (s *AuctionService) CreateAuction(ctx context.Context, req *models.AuctionRequest) (*models.Auction, error) {
	if err := validateAuctionRequest(req); err != nil {
		return nil, err
	}

	auction := &models.Auction{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}
	return auction, nil
}

// UpdateAuction updates an existing live auction
func (s *AuctionService) UpdateAuction(ctx context.Context, auctionID uint, req *models.AuctionRequest) (*models.Auction, error) {
	if err := validateAuctionRequest(req); err != nil {
		return nil, err
	}

	auction, err := s.repo.GetAuctionByID(ctx, auctionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuctionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}

	auction.Title = req.Title
	auction.StartTime = req.StartTime
	auction.EndTime = req.EndTime
	if err := s.repo.UpdateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("failed to update auction: %w", err)
	}
	return auction, nil
}

// GetAuctions retrieves all live auctions
func (s *AuctionService) GetAuctions(ctx context.Context) ([]models.Auction, error) {
	return s.repo.GetAuctions(ctx)
}

// DeleteAuction soft-deletes an auction with its listings and bids
func (s *AuctionService) DeleteAuction(ctx context.Context, auctionID uint) error {
	if _, err := s.repo.GetAuctionByID(ctx, auctionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuctionNotFound
		}
		return fmt.Errorf("failed to get auction: %w", err)
	}
	return s.repo.DeleteAuction(ctx, auctionID)
}
