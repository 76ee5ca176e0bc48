package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"
)

// UserStore defines credential storage for the marketplace.
type UserStore interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}

// AuctionStore defines auction listing storage.
//
// CompareAndSwapBid is the only write path for bids: the amount check
// happens atomically at write time, so two interleaved bids can never
// both land as "higher than current highest".
type AuctionStore interface {
	CreateAuction(ctx context.Context, item model.AuctionItem) (model.AuctionItem, error)
	GetAuction(ctx context.Context, id string) (model.AuctionItem, error)
	ListAuctions(ctx context.Context) ([]model.AuctionItem, error)
	ListLiveAuctions(ctx context.Context, now time.Time) ([]model.AuctionItem, error)
	UpdateAuction(ctx context.Context, id string, upd model.AuctionUpdate) (model.AuctionItem, error)
	DeleteAuction(ctx context.Context, id string) error
	MarkClosed(ctx context.Context, id string) error
	CompareAndSwapBid(ctx context.Context, id string, amount float64, bidder string) (model.AuctionItem, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of UserStore
// and AuctionStore.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]model.User        // key: username
	items map[string]model.AuctionItem // key: auction ID
	order []string                     // auction IDs in creation order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[string]model.User),
		items: make(map[string]model.AuctionItem),
	}
}

// CreateUser persists a new user; usernames are unique.
func (r *MemoryRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return model.User{}, fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
	}
	r.users[user.Username] = user
	return user, nil
}

// GetUserByUsername returns the user with the given username.
func (r *MemoryRepo) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// CreateAuction persists a new auction item.
func (r *MemoryRepo) CreateAuction(_ context.Context, item model.AuctionItem) (model.AuctionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return cloneItem(item), nil
}

// GetAuction returns one auction item by ID.
func (r *MemoryRepo) GetAuction(_ context.Context, id string) (model.AuctionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return model.AuctionItem{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return cloneItem(item), nil
}

// ListAuctions returns all auction items in creation order.
func (r *MemoryRepo) ListAuctions(_ context.Context) ([]model.AuctionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.AuctionItem, 0, len(r.order))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			items = append(items, cloneItem(item))
		}
	}
	return items, nil
}

// ListLiveAuctions returns items that are not closed and whose deadline
// is still ahead of now. Read-only: it never flips the stored closed flag.
func (r *MemoryRepo) ListLiveAuctions(_ context.Context, now time.Time) ([]model.AuctionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []model.AuctionItem
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		if !item.IsClosed && item.EndTime.After(now) {
			items = append(items, cloneItem(item))
		}
	}
	return items, nil
}

// UpdateAuction overwrites the editable fields of an item. Bid state and
// the closed flag are untouched.
func (r *MemoryRepo) UpdateAuction(_ context.Context, id string, upd model.AuctionUpdate) (model.AuctionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return model.AuctionItem{}, fmt.Errorf("update auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}

	item.Name = upd.Name
	item.Description = upd.Description
	item.StartingBid = upd.StartingBid
	item.EndTime = upd.EndTime
	r.items[id] = item
	return cloneItem(item), nil
}

// DeleteAuction removes an item.
func (r *MemoryRepo) DeleteAuction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("delete auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MarkClosed sets the closed flag. The flag is monotonic: once set it is
// never cleared.
func (r *MemoryRepo) MarkClosed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("mark auction %s closed: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	item.IsClosed = true
	r.items[id] = item
	return nil
}

// CompareAndSwapBid records a bid only if the item is still open and the
// amount beats the stored highest bid at write time. The check and the
// update happen under one lock.
func (r *MemoryRepo) CompareAndSwapBid(_ context.Context, id string, amount float64, bidder string) (model.AuctionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if item.IsClosed {
		return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w", id, auctionerrors.ErrAuctionClosed)
	}
	if amount <= item.HighestBid {
		return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w - current highest bid is %.2f", id, auctionerrors.ErrBidTooLow, item.HighestBid)
	}

	item.HighestBid = amount
	item.HighestBidder = &bidder
	r.items[id] = item
	return cloneItem(item), nil
}

// cloneItem returns a copy that shares no pointers with the stored item.
func cloneItem(item model.AuctionItem) model.AuctionItem {
	if item.HighestBidder != nil {
		bidder := *item.HighestBidder
		item.HighestBidder = &bidder
	}
	return item
}
