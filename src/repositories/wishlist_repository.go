package repositories

import (
	"context"

	"networth/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WishlistRepository interface {
	GetAllByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, userID, id string) error
}

type wishlistRepo struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) GetAllByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, ticker, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Ticker, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *wishlistRepo) Create(ctx context.Context, item *models.WishlistItem) error {
	// Re-adding a watched ticker refreshes the existing row instead of
	// inserting a duplicate.
	return r.db.QueryRow(ctx,
		`INSERT INTO wishlist_items (user_id, ticker)
		VALUES ($1, $2)
		ON CONFLICT (user_id, ticker) DO UPDATE SET ticker = EXCLUDED.ticker
		RETURNING id, created_at`,
		item.UserID, item.Ticker,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *wishlistRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}
