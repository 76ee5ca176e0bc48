package handler

import (
	"context"
	"net/http"
	"time"

	model "auction-marketplace/internal/models"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, name, description string, startingBid float64, endTime time.Time) (model.AuctionItem, error)
	PlaceBid(ctx context.Context, auctionID string, amount float64, bidder string) (model.AuctionItem, error)
	EditAuction(ctx context.Context, auctionID string, upd model.AuctionUpdate) (model.AuctionItem, error)
	DeleteAuction(ctx context.Context, auctionID string) error
	ListAuctions(ctx context.Context) ([]model.AuctionItem, error)
	GetAuction(ctx context.Context, auctionID string) (model.AuctionItem, error)
	ListLiveAuctions(ctx context.Context) ([]model.AuctionItem, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auction
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	item, err := h.service.CreateAuction(c.Request.Context(), req.Name, req.Description, req.StartingBid, req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create auction")
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"name":  req.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Auction created successfully", gin.H{"auction": item})
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id":   item.ID,
		"name":         item.Name,
		"starting_bid": item.StartingBid,
		"end_time":     item.EndTime,
	})
}

// PlaceBidHandler handles POST /bid/:id
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	item, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.BidAmount, req.BidderName)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status == http.StatusInternalServerError {
			message = "Bidding failed"
		}
		utils.JSONError(c, status, message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID,
			"bidder":     req.BidderName,
			"amount":     req.BidAmount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Bid placed successfully", gin.H{"auction": item})
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"auction_id":  item.ID,
		"bidder":      req.BidderName,
		"highest_bid": item.HighestBid,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	items, err := h.service.ListAuctions(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch auctions")
		utils.Error("ListAuctionsHandler: failed to list auctions", map[string]any{"error": err.Error()})
		return
	}

	if items == nil {
		items = []model.AuctionItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetAuctionHandler handles GET /auctions/:id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	item, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status == http.StatusInternalServerError {
			message = "Failed to fetch auction"
		}
		utils.JSONError(c, status, message)
		utils.Warn("GetAuctionHandler: failed to fetch auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// EditAuctionHandler handles PUT /auction/:id
func (h *AuctionHandler) EditAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	var req helpers.EditAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EditAuctionHandler", err)
		return
	}

	item, err := h.service.EditAuction(c.Request.Context(), auctionID, model.AuctionUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartingBid: req.StartingBid,
		EndTime:     req.EndTime,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status == http.StatusInternalServerError {
			message = "Failed to update auction"
		}
		utils.JSONError(c, status, message)
		utils.Warn("EditAuctionHandler: failed to update auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Auction updated successfully", gin.H{"auction": item})
	helpers.LogSuccess("EditAuctionHandler", "auction updated", map[string]any{"auction_id": item.ID})
}

// DeleteAuctionHandler handles DELETE /auction/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	if err := h.service.DeleteAuction(c.Request.Context(), auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status == http.StatusInternalServerError {
			message = "Failed to delete auction"
		}
		utils.JSONError(c, status, message)
		utils.Warn("DeleteAuctionHandler: failed to delete auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Auction deleted successfully", nil)
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted", map[string]any{"auction_id": auctionID})
}

// ListLiveAuctionsHandler handles GET /live-auctions
func (h *AuctionHandler) ListLiveAuctionsHandler(c *gin.Context) {
	items, err := h.service.ListLiveAuctions(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch live auctions")
		utils.Error("ListLiveAuctionsHandler: failed to list live auctions", map[string]any{"error": err.Error()})
		return
	}

	if items == nil {
		items = []model.AuctionItem{}
	}
	c.JSON(http.StatusOK, items)
}
