package helpers

import "time"

// Request DTOs. Field names match the public wire format.
type CreateAuctionRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartingBid float64   `json:"startingBid" binding:"gte=0"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

type EditAuctionRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartingBid float64   `json:"startingBid" binding:"gte=0"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

type PlaceBidRequest struct {
	BidAmount  float64 `json:"bidAmount" binding:"required,gt=0"`
	BidderName string  `json:"bidderName" binding:"required"`
}
