package handlers

import (
	"errors"
	"net/http"

	"auction-market/internal/models"
	"auction-market/internal/services"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	bidService *services.BidService
}

func NewBidHandler(bidService *services.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// PlaceBid places a bid on a listing
// POST /api/bids
func (h *BidHandler) PlaceBid(c *gin.Context) {
	var req models.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bidService.PlaceBid(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBiddingClosed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// GetBids retrieves all bids
// GET /api/bids
func (h *BidHandler) GetBids(c *gin.Context) {
	bids, err := h.bidService.GetBids(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// GetActiveBids retrieves bids on currently active auctions
// GET /api/bids/active
func (h *BidHandler) GetActiveBids(c *gin.Context) {
	bids, err := h.bidService.GetActiveBids(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// GetUserBids retrieves all bids placed by a user
// GET /api/users/:phone/bids
func (h *BidHandler) GetUserBids(c *gin.Context) {
	bids, err := h.bidService.GetUserBids(c.Request.Context(), c.Param("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}
