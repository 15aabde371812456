package services

import (
	"context"
	"fmt"
	"time"

	"auction-market/internal/models"
	"auction-market/internal/notify"
	"auction-market/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SettlementService drives one settlement pass: find auctions whose bidding
// window has closed, compute the winning bid per listing, record the outcome
// exactly once per listing, and announce it to the operator channel.
type SettlementService struct {
	repo          *repository.Repository
	notifier      notify.Notifier
	operatorPhone string
}

func NewSettlementService(repo *repository.Repository, notifier notify.Notifier, operatorPhone string) *SettlementService {
	return &SettlementService{
		repo:          repo,
		notifier:      notifier,
		operatorPhone: operatorPhone,
	}
}

// PassSummary reports what one settlement pass did
type PassSummary struct {
	Auctions       int
	Settled        int
	NoBids         int
	Skipped        int
	NotifyFailures int
}

// SettleClosedAuctions runs one settlement pass. Storage errors abort the
// remaining work and are returned for the scheduler to log; the next tick
// retries from scratch, and the unique index on auction_results.listing_id
// guarantees retries never duplicate an outcome. Notification failures never
// abort anything: the result is already durable, and at-least-once delivery
// is all the operator channel is promised.
func (s *SettlementService) SettleClosedAuctions(ctx context.Context) (*PassSummary, error) {
	summary := &PassSummary{}
	now := time.Now().UTC()

	auctions, err := s.repo.GetClosedUnsettledAuctions(ctx, now)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch closed auctions: %w", err)
	}
	if len(auctions) == 0 {
		return summary, nil
	}
	summary.Auctions = len(auctions)

	auctionIDs := make([]uint, 0, len(auctions))
	for _, a := range auctions {
		auctionIDs = append(auctionIDs, a.ID)
	}

	listings, err := s.repo.GetListingsByAuctionIDs(ctx, auctionIDs)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch listings: %w", err)
	}

	listingIDs := make([]uint, 0, len(listings))
	for _, l := range listings {
		listingIDs = append(listingIDs, l.ID)
	}

	rows, err := s.repo.GetLiveBidRowsByListingIDs(ctx, listingIDs)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch bids: %w", err)
	}

	winners := SelectWinners(rows)

	settled, err := s.repo.GetSettledListingIDs(ctx, listingIDs)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch settled listings: %w", err)
	}

	listingsByAuction := make(map[uint][]models.Listing)
	for _, l := range listings {
		listingsByAuction[l.AuctionID] = append(listingsByAuction[l.AuctionID], l)
	}

	for _, auction := range auctions {
		for _, listing := range listingsByAuction[auction.ID] {
			if _, done := settled[listing.ID]; done {
				// Recorded on an earlier tick that failed before stamping the
				// auction watermark. Skip quietly, including the notification.
				summary.Skipped++
				continue
			}

			if err := s.settleListing(ctx, &auction, &listing, winners, summary); err != nil {
				return summary, err
			}
		}

		if err := s.repo.MarkAuctionSettled(ctx, auction.ID, now); err != nil {
			return summary, fmt.Errorf("failed to mark auction %d settled: %w", auction.ID, err)
		}
		log.Printf("[Settlement] Auction %d settled (%q)", auction.ID, auction.Title)
	}

	return summary, nil
}

func (s *SettlementService) settleListing(
	ctx context.Context,
	auction *models.Auction,
	listing *models.Listing,
	winners map[uint]models.BidRow,
	summary *PassSummary,
) error {
	var message string

	winner, hasBids := winners[listing.ID]
	if hasBids {
		result := &models.AuctionResult{
			ID:           uuid.New(),
			ListingID:    listing.ID,
			BidID:        winner.BidID,
			UserID:       winner.UserID,
			ListingTitle: listing.Title,
			WinnerName:   winner.UserName,
			Amount:       winner.Amount,
		}

		created, err := s.repo.CreateAuctionResult(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to record result for listing %d: %w", listing.ID, err)
		}
		if !created {
			// A concurrent pass won the insert race. The other writer owns the
			// notification too.
			summary.Skipped++
			return nil
		}

		summary.Settled++
		message = winnerMessage(auction, listing, &winner)
	} else {
		// No bids: no row is persisted, the notification is the only output.
		summary.NoBids++
		message = noBidsMessage(auction, listing)
	}

	if err := s.notifier.Send(ctx, s.operatorPhone, message); err != nil {
		summary.NotifyFailures++
		log.Printf("[Settlement] Notification failed for listing %d: %v", listing.ID, err)
	}

	return nil
}

func winnerMessage(auction *models.Auction, listing *models.Listing, winner *models.BidRow) string {
	return fmt.Sprintf(
		"Auction #%d %q: listing %q won by %s with a bid of %s.",
		auction.ID, auction.Title, listing.Title, winner.UserName, winner.Amount.StringFixed(2),
	)
}

func noBidsMessage(auction *models.Auction, listing *models.Listing) string {
	return fmt.Sprintf(
		"Auction #%d %q: listing %q closed with no bids placed.",
		auction.ID, auction.Title, listing.Title,
	)
}
