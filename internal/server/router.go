package server

import (
	"net/http"
	"time"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	"auction-marketplace/internal/repository"
	auctionhandler "auction-marketplace/services/auction/handler"
	authhandler "auction-marketplace/services/auth/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(authService *auth.AuthService, auctionService *auction.AuctionService, users repository.UserStore) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.Default())

	authHandler := authhandler.NewAuthHandler(authService)
	auctionHandler := auctionhandler.NewAuctionHandler(auctionService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.POST("/signup", authHandler.SignupHandler)
	router.POST("/signin", authHandler.SigninHandler)

	router.POST("/auction", auctionHandler.CreateAuctionHandler)
	router.POST("/bid/:id", auctionHandler.PlaceBidHandler)
	router.GET("/auctions", auctionHandler.ListAuctionsHandler)
	router.GET("/auctions/:id", auctionHandler.GetAuctionHandler)
	router.PUT("/auction/:id", auctionHandler.EditAuctionHandler)
	router.DELETE("/auction/:id", auctionHandler.DeleteAuctionHandler)
	router.GET("/live-auctions", auctionHandler.ListLiveAuctionsHandler)

	// Tokens are issued at signin but the marketplace routes above do
	// not require one; only the identity route is guarded.
	userCache := cache.New(5*time.Minute, 10*time.Minute)
	router.GET("/me", RequireAuth(authService, users, userCache), authHandler.MeHandler)

	return router
}
