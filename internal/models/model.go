package models

import "time"

// User represents a registered account in the marketplace.
// PasswordHash is never serialized in API responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuctionStatus is the derived lifecycle state of an auction item.
type AuctionStatus string

const (
	StatusOpen   AuctionStatus = "open"
	StatusClosed AuctionStatus = "closed"
)

// AuctionItem represents a listing open for bids until its deadline.
type AuctionItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartingBid   float64   `json:"startingBid"`
	HighestBid    float64   `json:"highestBid"`
	HighestBidder *string   `json:"highestBidder"`
	CreatedAt     time.Time `json:"createdAt"`
	EndTime       time.Time `json:"endTime"`
	IsClosed      bool      `json:"isClosed"`
}

// Status derives the lifecycle state of the item at the given instant.
// An item whose deadline has passed is closed even if the stored flag
// has not been persisted yet, so reads never depend on the lazy close.
func (a AuctionItem) Status(now time.Time) AuctionStatus {
	if a.IsClosed || now.After(a.EndTime) {
		return StatusClosed
	}
	return StatusOpen
}

// AuctionUpdate carries the editable fields of an item. Edits are a
// full overwrite of these four fields and touch nothing else.
type AuctionUpdate struct {
	Name        string
	Description string
	StartingBid float64
	EndTime     time.Time
}
