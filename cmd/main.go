package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auction-market/internal/config"
	"auction-market/internal/database"
	"auction-market/internal/handlers"
	"auction-market/internal/jobs"
	"auction-market/internal/logging"
	"auction-market/internal/notify"
	"auction-market/internal/repository"
	"auction-market/internal/services"
)

func main() {
	logging.Setup()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	userService := services.NewUserService(repo)
	auctionService := services.NewAuctionService(repo)
	listingService := services.NewListingService(repo)
	bidService := services.NewBidService(repo)

	// Initialize WhatsApp notifier
	whatsappClient := notify.NewWhatsAppClient(cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID)

	// Initialize settlement service
	settlementService := services.NewSettlementService(repo, whatsappClient, cfg.WhatsApp.OperatorPhone)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	auctionHandler := handlers.NewAuctionHandler(auctionService)
	listingHandler := handlers.NewListingHandler(listingService)
	bidHandler := handlers.NewBidHandler(bidService)
	resultHandler := handlers.NewAuctionResultHandler(repo)

	// Start settlement job
	settlementJob := jobs.NewSettlementJob(settlementService, cfg.Settlement.Interval)
	go settlementJob.Start()
	log.Println("Settlement job started")

	// Set up Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		// Auction endpoints
		api.POST("/auctions", auctionHandler.CreateAuction)
		api.PUT("/auctions/:id", auctionHandler.UpdateAuction)
		api.GET("/auctions", auctionHandler.GetAuctions)
		api.DELETE("/auctions/:id", auctionHandler.DeleteAuction)
		api.GET("/auctions/:id/listings", listingHandler.GetAuctionListings)

		// Listing endpoints
		api.POST("/listings", listingHandler.CreateListing)
		api.PUT("/listings/:id", listingHandler.UpdateListing)
		api.DELETE("/listings/:id", listingHandler.DeleteListing)

		// User endpoints
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:phone", userHandler.GetUser)
		api.GET("/users/:phone/bids", bidHandler.GetUserBids)
		api.DELETE("/users/:id", userHandler.DeleteUser)

		// Bid endpoints
		api.POST("/bids", bidHandler.PlaceBid)
		api.GET("/bids", bidHandler.GetBids)
		api.GET("/bids/active", bidHandler.GetActiveBids)

		// Auction result endpoints (read-only, written by settlement)
		api.GET("/auction-results", resultHandler.GetAuctionResults)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	settlementJob.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
