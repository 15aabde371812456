package handlers

import (
	"net/http"

	"auction-market/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuctionResultHandler reads the settled table. Results are written only by
// the settlement job; this surface is read-only.
type AuctionResultHandler struct {
	repo *repository.Repository
}

func NewAuctionResultHandler(repo *repository.Repository) *AuctionResultHandler {
	return &AuctionResultHandler{repo: repo}
}

// GetAuctionResults retrieves all settlement records
// GET /api/auction-results
func (h *AuctionResultHandler) GetAuctionResults(c *gin.Context) {
	results, err := h.repo.GetAuctionResultRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auction_results": results})
}
