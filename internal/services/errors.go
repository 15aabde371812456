package services

import "errors"

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrBiddingClosed is returned when a bid arrives after the auction's end
	// time. Late bids are rejected here, at the write path, which is what lets
	// settlement read the bid ledger without locking it.
	ErrBiddingClosed = errors.New("bidding is closed, the auction has already ended")
)
