package schemas

import "networth/src/models"

// CreateHoldingRequest records a purchase. Currency amounts are normalized
// into the reporting currency at write time.
type CreateHoldingRequest struct {
	Type         models.AssetType `json:"type"`
	Name         string           `json:"name"`
	Ticker       string           `json:"ticker,omitempty"`
	Quantity     float64          `json:"quantity"`
	BuyPrice     float64          `json:"buyPrice"`
	CurrentPrice *float64         `json:"currentPrice,omitempty"`
	Currency     string           `json:"currency"`
}

// UpdateHoldingRequest is the by-id correction path: only the fields present
// are applied, bypassing the ticker merge logic.
type UpdateHoldingRequest struct {
	Type         *models.AssetType `json:"type,omitempty"`
	Name         *string           `json:"name,omitempty"`
	Ticker       *string           `json:"ticker,omitempty"`
	Quantity     *float64          `json:"quantity,omitempty"`
	BuyPrice     *float64          `json:"buyPrice,omitempty"`
	CurrentPrice *float64          `json:"currentPrice,omitempty"`
	Currency     *string           `json:"currency,omitempty"`
}

type HoldingIDResponse struct {
	ID string `json:"id"`
}

// PortfolioSummary holds the derived aggregates over a user's holdings, all
// expressed in the reporting currency.
type PortfolioSummary struct {
	Currency      string             `json:"currency"`
	NetWorth      float64            `json:"netWorth"`
	InvestedValue float64            `json:"investedValue"`
	ProfitLoss    float64            `json:"profitLoss"`
	ByType        map[string]float64 `json:"byType"`
}

type WishlistItemRequest struct {
	Ticker string `json:"ticker"`
}
