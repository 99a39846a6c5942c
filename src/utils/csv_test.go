package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"networth/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVToStockSymbols(t *testing.T) {
	path := writeTempCSV(t, `Ticker,Name,Exchange
RELIANCE,Reliance Industries Limited,NSE
tcs,Tata Consultancy Services Limited,NSE
INFY,Infosys Limited
,Missing Ticker,NSE
`)

	symbols, err := utils.CSVToStockSymbols(path)
	require.NoError(t, err)
	require.Len(t, symbols, 3)

	assert.Equal(t, "RELIANCE", symbols[0].Ticker)
	assert.Equal(t, "NSE", symbols[0].Exchange)
	// Tickers are normalized on load
	assert.Equal(t, "TCS", symbols[1].Ticker)
	// Exchange column is optional
	assert.Equal(t, "INFY", symbols[2].Ticker)
	assert.Empty(t, symbols[2].Exchange)
}

func TestCSVToStockSymbolsMissingFile(t *testing.T) {
	_, err := utils.CSVToStockSymbols(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
