package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auctionColumns = `id, name, description, starting_bid, highest_bid, highest_bidder, created_at, end_time, is_closed`

// PGRepo is a PostgreSQL implementation of UserStore and AuctionStore
// backed by a pgx connection pool.
type PGRepo struct {
	db *pgxpool.Pool
}

// NewPGRepo creates a new PostgreSQL repository instance
func NewPGRepo(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{db: db}
}

func (r *PGRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, created_at`
	var out model.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt).Scan(
		&out.ID, &out.Username, &out.PasswordHash, &out.CreatedAt,
	)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return model.User{}, fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
		}
		return model.User{}, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return out, nil
}

func (r *PGRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1`
	var u model.User
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user %s: %w", username, err)
	}
	return u, nil
}

func (r *PGRepo) CreateAuction(ctx context.Context, item model.AuctionItem) (model.AuctionItem, error) {
	query := `
		INSERT INTO auction_items (` + auctionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + auctionColumns
	row := r.db.QueryRow(ctx, query,
		item.ID, item.Name, item.Description, item.StartingBid,
		item.HighestBid, item.HighestBidder, item.CreatedAt, item.EndTime, item.IsClosed,
	)
	out, err := scanAuction(row)
	if err != nil {
		return model.AuctionItem{}, fmt.Errorf("create auction: %w", err)
	}
	return out, nil
}

func (r *PGRepo) GetAuction(ctx context.Context, id string) (model.AuctionItem, error) {
	query := `SELECT ` + auctionColumns + ` FROM auction_items WHERE id = $1`
	item, err := scanAuction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionItem{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
		}
		return model.AuctionItem{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return item, nil
}

func (r *PGRepo) ListAuctions(ctx context.Context) ([]model.AuctionItem, error) {
	query := `SELECT ` + auctionColumns + ` FROM auction_items ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()
	return collectAuctions(rows)
}

func (r *PGRepo) ListLiveAuctions(ctx context.Context, now time.Time) ([]model.AuctionItem, error) {
	query := `
		SELECT ` + auctionColumns + `
		FROM auction_items
		WHERE is_closed = FALSE AND end_time > $1
		ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list live auctions: %w", err)
	}
	defer rows.Close()
	return collectAuctions(rows)
}

func (r *PGRepo) UpdateAuction(ctx context.Context, id string, upd model.AuctionUpdate) (model.AuctionItem, error) {
	query := `
		UPDATE auction_items
		SET name = $2, description = $3, starting_bid = $4, end_time = $5
		WHERE id = $1
		RETURNING ` + auctionColumns
	item, err := scanAuction(r.db.QueryRow(ctx, query, id, upd.Name, upd.Description, upd.StartingBid, upd.EndTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionItem{}, fmt.Errorf("update auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
		}
		return model.AuctionItem{}, fmt.Errorf("update auction %s: %w", id, err)
	}
	return item, nil
}

func (r *PGRepo) DeleteAuction(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM auction_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

func (r *PGRepo) MarkClosed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE auction_items SET is_closed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark auction %s closed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark auction %s closed: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// CompareAndSwapBid applies the bid as a single conditional UPDATE, so the
// amount check against the stored highest bid happens at write time.
func (r *PGRepo) CompareAndSwapBid(ctx context.Context, id string, amount float64, bidder string) (model.AuctionItem, error) {
	query := `
		UPDATE auction_items
		SET highest_bid = $2, highest_bidder = $3
		WHERE id = $1 AND is_closed = FALSE AND highest_bid < $2
		RETURNING ` + auctionColumns
	item, err := scanAuction(r.db.QueryRow(ctx, query, id, amount, bidder))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w", id, err)
	}

	// The conditional update matched nothing: look at the row to tell
	// a missing auction from a closed one from a losing bid.
	current, err := r.GetAuction(ctx, id)
	if err != nil {
		return model.AuctionItem{}, err
	}
	if current.IsClosed {
		return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w", id, auctionerrors.ErrAuctionClosed)
	}
	return model.AuctionItem{}, fmt.Errorf("bid on auction %s: %w - current highest bid is %.2f", id, auctionerrors.ErrBidTooLow, current.HighestBid)
}

func scanAuction(row pgx.Row) (model.AuctionItem, error) {
	var a model.AuctionItem
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.StartingBid,
		&a.HighestBid, &a.HighestBidder, &a.CreatedAt, &a.EndTime, &a.IsClosed,
	)
	return a, err
}

func collectAuctions(rows pgx.Rows) ([]model.AuctionItem, error) {
	var items []model.AuctionItem
	for rows.Next() {
		item, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
