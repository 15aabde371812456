package services

import "auction-market/internal/models"

// SelectWinners computes the winning bid per listing: the live bid with the
// greatest amount. Ties resolve to the lowest bid ID among the maximal
// amounts, so the outcome is deterministic regardless of the order rows come
// back from the store. Listings with no rows are simply absent from the
// result; that is the "no bids" outcome, not an error.
//
// Pure function: no side effects, no data access.
func SelectWinners(rows []models.BidRow) map[uint]models.BidRow {
	winners := make(map[uint]models.BidRow)
	for _, row := range rows {
		current, ok := winners[row.ListingID]
		if !ok ||
			row.Amount.GreaterThan(current.Amount) ||
			(row.Amount.Equal(current.Amount) && row.BidID < current.BidID) {
			winners[row.ListingID] = row
		}
	}
	return winners
}
