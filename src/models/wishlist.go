package models

import "time"

// WishlistItem is a ticker a user is watching, with no valuation attached.
type WishlistItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Ticker    string    `db:"ticker" json:"ticker"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
