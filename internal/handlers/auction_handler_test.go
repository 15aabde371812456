package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Auction{},
		&models.Listing{},
		&models.Bid{},
		&models.AuctionResult{},
	))

	repo := repository.NewRepository(db)
	auctionHandler := NewAuctionHandler(services.NewAuctionService(repo))
	bidHandler := NewBidHandler(services.NewBidService(repo))

	router := gin.New()
	router.POST("/api/auctions", auctionHandler.CreateAuction)
	router.GET("/api/auctions", auctionHandler.GetAuctions)
	router.POST("/api/bids", bidHandler.PlaceBid)
	return router, db
}

func TestCreateAuction(t *testing.T) {
	router, db := setupRouter(t)

	body := `{"title":"March Produce","start_time":"2026-03-01T08:00:00Z","end_time":"2026-03-02T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auctions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Auction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateAuction_RejectsInvertedWindow(t *testing.T) {
	router, _ := setupRouter(t)

	body := `{"title":"Backwards","start_time":"2026-03-02T18:00:00Z","end_time":"2026-03-01T08:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auctions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start time must be before end time")
}

func TestPlaceBid_ClosedAuctionRejected(t *testing.T) {
	router, db := setupRouter(t)

	user := &models.User{Name: "Amina", PhoneNumber: "+254700000001"}
	require.NoError(t, db.Create(user).Error)
	auction := &models.Auction{
		Title:     "Ended",
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(auction).Error)
	listing := &models.Listing{AuctionID: auction.ID, Title: "Dairy Cow", BasePrice: mustDecimal("50.00")}
	require.NoError(t, db.Create(listing).Error)

	body := fmt.Sprintf(`{"listing_id":%d,"user_id":%d,"amount":"75.00"}`, listing.ID, user.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already ended")
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
