package services

import (
	"networth/src/models"
	"networth/src/schemas"
	"networth/src/utils"
)

// NetWorth sums the market value of all holdings in the reporting currency.
// Each term is quantity times the current price, falling back to the cost
// basis when no market price is known. A nil or empty list yields 0.
func NetWorth(holdings []models.Holding) float64 {
	total := 0.0
	for i := range holdings {
		h := &holdings[i]
		value := h.Quantity * h.MarketPrice()
		total += utils.ConvertToReporting(value, h.Currency)
	}
	return total
}

// InvestedValue sums quantity times cost basis in the reporting currency.
// Current prices are never consulted; this is the cost-basis complement to
// NetWorth and the base for profit/loss.
func InvestedValue(holdings []models.Holding) float64 {
	total := 0.0
	for i := range holdings {
		h := &holdings[i]
		value := h.Quantity * h.BuyPrice
		total += utils.ConvertToReporting(value, h.Currency)
	}
	return total
}

// GroupByType sums market value per asset type. Only types actually present
// in the list appear as keys.
func GroupByType(holdings []models.Holding) map[string]float64 {
	grouped := make(map[string]float64)
	for i := range holdings {
		h := &holdings[i]
		value := h.Quantity * h.MarketPrice()
		grouped[string(h.Type)] += utils.ConvertToReporting(value, h.Currency)
	}
	return grouped
}

// Summarize bundles the aggregates into a portfolio summary.
func Summarize(holdings []models.Holding) *schemas.PortfolioSummary {
	netWorth := NetWorth(holdings)
	invested := InvestedValue(holdings)
	return &schemas.PortfolioSummary{
		Currency:      utils.ReportingCurrency,
		NetWorth:      netWorth,
		InvestedValue: invested,
		ProfitLoss:    netWorth - invested,
		ByType:        GroupByType(holdings),
	}
}
