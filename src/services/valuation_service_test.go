package services_test

import (
	"testing"

	"networth/src/models"
	"networth/src/services"

	"github.com/stretchr/testify/assert"
)

func holding(assetType models.AssetType, qty, buy, current float64, currency string) models.Holding {
	return models.Holding{
		Type:         assetType,
		Quantity:     qty,
		BuyPrice:     buy,
		CurrentPrice: current,
		Currency:     currency,
	}
}

func TestNetWorthEmpty(t *testing.T) {
	assert.Equal(t, 0.0, services.NetWorth(nil))
	assert.Equal(t, 0.0, services.NetWorth([]models.Holding{}))
}

func TestNetWorthPrefersCurrentPrice(t *testing.T) {
	holdings := []models.Holding{
		holding(models.AssetTypeStock, 10, 100, 200, "INR"),
		holding(models.AssetTypeStock, 1, 10, 20, "USD"),
	}

	// 10*200 + 1*20*83.5
	assert.InDelta(t, 3670.0, services.NetWorth(holdings), 1e-9)
}

func TestNetWorthFallsBackToBuyPrice(t *testing.T) {
	holdings := []models.Holding{
		holding(models.AssetTypeStock, 10, 100, 0, "INR"),
		holding(models.AssetTypeStock, 1, 10, 0, "USD"),
	}

	assert.InDelta(t, 1835.0, services.NetWorth(holdings), 1e-9)
}

func TestInvestedValueIgnoresCurrentPrice(t *testing.T) {
	holdings := []models.Holding{
		holding(models.AssetTypeStock, 10, 100, 200, "INR"),
		holding(models.AssetTypeStock, 1, 10, 50, "USD"),
	}

	// 10*100 + 1*10*83.5, current prices irrelevant
	assert.InDelta(t, 1835.0, services.InvestedValue(holdings), 1e-9)
}

func TestGroupByType(t *testing.T) {
	holdings := []models.Holding{
		holding(models.AssetTypeStock, 10, 100, 0, "INR"),
		holding(models.AssetTypeStock, 10, 100, 0, "INR"),
		holding(models.AssetTypeGold, 5, 1000, 0, "INR"),
	}

	grouped := services.GroupByType(holdings)

	assert.InDelta(t, 2000.0, grouped["STOCK"], 1e-9)
	assert.InDelta(t, 5000.0, grouped["GOLD"], 1e-9)
	// No key for types without holdings
	_, ok := grouped["MF"]
	assert.False(t, ok)
	assert.Len(t, grouped, 2)
}

func TestSummarize(t *testing.T) {
	holdings := []models.Holding{
		holding(models.AssetTypeStock, 10, 100, 200, "INR"),
	}

	summary := services.Summarize(holdings)

	assert.Equal(t, "INR", summary.Currency)
	assert.InDelta(t, 2000.0, summary.NetWorth, 1e-9)
	assert.InDelta(t, 1000.0, summary.InvestedValue, 1e-9)
	assert.InDelta(t, 1000.0, summary.ProfitLoss, 1e-9)
	assert.InDelta(t, 2000.0, summary.ByType["STOCK"], 1e-9)
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	summary := services.Summarize(nil)

	assert.Equal(t, 0.0, summary.NetWorth)
	assert.Equal(t, 0.0, summary.InvestedValue)
	assert.Equal(t, 0.0, summary.ProfitLoss)
	assert.Empty(t, summary.ByType)
}
