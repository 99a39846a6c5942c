package models

import (
	"time"
)

type AssetType string

const (
	AssetTypeStock    AssetType = "STOCK"
	AssetTypeMF       AssetType = "MF"
	AssetTypeProperty AssetType = "PROPERTY"
	AssetTypeGold     AssetType = "GOLD"
	AssetTypeCash     AssetType = "CASH"
)

// ValidAssetType reports whether t is one of the known asset types.
func ValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeStock, AssetTypeMF, AssetTypeProperty, AssetTypeGold, AssetTypeCash:
		return true
	}
	return false
}

// Holding is one row of a user's portfolio ledger. Prices are stored already
// normalized into the reporting currency; the original currency is not kept.
// At most one holding exists per (user, non-null ticker).
type Holding struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"-"`
	Type         AssetType `db:"type" json:"type"`
	Name         string    `db:"name" json:"name"`
	Ticker       *string   `db:"ticker" json:"ticker,omitempty"`
	Quantity     float64   `db:"quantity" json:"quantity"`
	BuyPrice     float64   `db:"buy_price" json:"buyPrice"`
	CurrentPrice float64   `db:"current_price" json:"currentPrice"`
	Currency     string    `db:"currency" json:"currency"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// MarketPrice returns the price used for valuation: the latest known market
// price when set, otherwise the cost basis.
func (h *Holding) MarketPrice() float64 {
	if h.CurrentPrice > 0 {
		return h.CurrentPrice
	}
	return h.BuyPrice
}
