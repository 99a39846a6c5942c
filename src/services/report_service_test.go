package services_test

import (
	"context"
	"testing"
	"time"

	"networth/src/models"
	"networth/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateXLSXReport(t *testing.T) {
	ticker := "AAPL"
	holdings := []models.Holding{
		{
			Type: models.AssetTypeStock, Name: "Apple", Ticker: &ticker,
			Quantity: 10, BuyPrice: 1000, CurrentPrice: 1200, Currency: "INR",
			CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Type: models.AssetTypeGold, Name: "Gold coins",
			Quantity: 5, BuyPrice: 6000, CurrentPrice: 0, Currency: "INR",
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	f, err := services.NewReportService().GenerateXLSXReport(context.Background(), holdings)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Holdings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Type", header)

	name, err := f.GetCellValue("Holdings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Apple", name)

	tickerCell, err := f.GetCellValue("Holdings", "C3")
	require.NoError(t, err)
	assert.Empty(t, tickerCell)

	created, err := f.GetCellValue("Holdings", "H2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", created)

	// Net worth = 10*1200 + 5*6000 (gold falls back to buy price)
	netWorth, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "42000", netWorth)

	invested, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "40000", invested)
}

func TestGenerateXLSXReportEmptyPortfolio(t *testing.T) {
	f, err := services.NewReportService().GenerateXLSXReport(context.Background(), nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Holdings")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	netWorth, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "0", netWorth)
}
