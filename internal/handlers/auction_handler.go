package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"auction-market/internal/models"
	"auction-market/internal/services"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	auctionService *services.AuctionService
}

func NewAuctionHandler(auctionService *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

// CreateAuction creates a new auction
// POST /api/auctions
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var req models.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auction, err := h.auctionService.CreateAuction(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, auction)
}

// UpdateAuction updates an existing auction
// PUT /api/auctions/:id
func (h *AuctionHandler) UpdateAuction(c *gin.Context) {
	auctionID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auction id"})
		return
	}

	var req models.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auction, err := h.auctionService.UpdateAuction(c.Request.Context(), auctionID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, auction)
}

// GetAuctions retrieves all auctions
// GET /api/auctions
func (h *AuctionHandler) GetAuctions(c *gin.Context) {
	auctions, err := h.auctionService.GetAuctions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auctions": auctions})
}

// DeleteAuction deletes an auction with its listings and bids
// DELETE /api/auctions/:id
func (h *AuctionHandler) DeleteAuction(c *gin.Context) {
	auctionID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auction id"})
		return
	}

	if err := h.auctionService.DeleteAuction(c.Request.Context(), auctionID); err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "auction deleted"})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
