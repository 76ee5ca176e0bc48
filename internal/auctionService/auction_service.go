package auction

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

// AuctionService defines the business logic for auction listings and bids
type AuctionService struct {
	store repository.AuctionStore
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore) *AuctionService {
	return &AuctionService{
		store: store,
	}
}

// CreateAuction persists a new open listing. The highest bid starts at
// the starting bid with no bidder recorded.
func (s *AuctionService) CreateAuction(ctx context.Context, name, description string, startingBid float64, endTime time.Time) (models.AuctionItem, error) {
	if name == "" {
		return models.AuctionItem{}, fmt.Errorf("service: %w - missing auction name", auctionerrors.ErrInvalidInput)
	}
	if endTime.IsZero() {
		return models.AuctionItem{}, fmt.Errorf("service: %w - missing end time", auctionerrors.ErrInvalidInput)
	}

	item := models.AuctionItem{
		ID:          utils.GenerateID(),
		Name:        name,
		Description: description,
		StartingBid: startingBid,
		HighestBid:  startingBid,
		CreatedAt:   time.Now().UTC(),
		EndTime:     endTime,
	}

	created, err := s.store.CreateAuction(ctx, item)
	if err != nil {
		return models.AuctionItem{}, fmt.Errorf("service: failed to create auction %s: %w", item.ID, err)
	}
	return created, nil
}

// PlaceBid validates and records a bid against an open auction. The
// amount check is a store-level compare-and-set, so concurrent bids on
// the same item can never both win.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID string, amount float64, bidder string) (models.AuctionItem, error) {
	if auctionID == "" || bidder == "" {
		return models.AuctionItem{}, fmt.Errorf("service: %w - missing auction ID or bidder name", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.AuctionItem{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	item, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return models.AuctionItem{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	if item.Status(time.Now().UTC()) == models.StatusClosed {
		// Persist the lazy close; correctness comes from the derived
		// status, so a failure here is only logged.
		if !item.IsClosed {
			if err := s.store.MarkClosed(ctx, auctionID); err != nil {
				utils.Error("failed to persist auction close", map[string]any{
					"auction_id": auctionID,
					"error":      err.Error(),
				})
			}
		}
		return models.AuctionItem{}, fmt.Errorf("service: bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionClosed)
	}

	updated, err := s.store.CompareAndSwapBid(ctx, auctionID, amount, bidder)
	if err != nil {
		return models.AuctionItem{}, fmt.Errorf("service: failed to record bid on auction %s by %s: %w", auctionID, bidder, err)
	}
	return updated, nil
}

// EditAuction overwrites the listed fields of an auction. Bid state and
// the closed flag are never touched by an edit.
func (s *AuctionService) EditAuction(ctx context.Context, auctionID string, upd models.AuctionUpdate) (models.AuctionItem, error) {
	if auctionID == "" {
		return models.AuctionItem{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if upd.Name == "" {
		return models.AuctionItem{}, fmt.Errorf("service: %w - missing auction name", auctionerrors.ErrInvalidInput)
	}

	item, err := s.store.UpdateAuction(ctx, auctionID, upd)
	if err != nil {
		return models.AuctionItem{}, fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}
	return item, nil
}

// DeleteAuction removes a listing.
func (s *AuctionService) DeleteAuction(ctx context.Context, auctionID string) error {
	if auctionID == "" {
		return fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	if err := s.store.DeleteAuction(ctx, auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
	}
	return nil
}

// ListAuctions returns all listings, open and closed.
func (s *AuctionService) ListAuctions(ctx context.Context) ([]models.AuctionItem, error) {
	items, err := s.store.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return items, nil
}

// GetAuction returns a single listing.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (models.AuctionItem, error) {
	if auctionID == "" {
		return models.AuctionItem{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	item, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return models.AuctionItem{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return item, nil
}

// ListLiveAuctions returns listings that are still open for bids. The
// filter is read-only and never flips the stored closed flag.
func (s *AuctionService) ListLiveAuctions(ctx context.Context) ([]models.AuctionItem, error) {
	items, err := s.store.ListLiveAuctions(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("service: failed to list live auctions: %w", err)
	}
	return items, nil
}
