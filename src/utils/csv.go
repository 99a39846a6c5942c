package utils

import (
	"encoding/csv"
	"fmt"
	"os"

	"networth/src/models"
)

// CSVToStockSymbols reads a symbol master CSV (ticker, name, exchange) and
// returns the parsed rows. Rows missing a ticker or name are skipped.
func CSVToStockSymbols(filePath string) ([]models.StockSymbol, error) {
	// Open the CSV file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open the file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %v", err)
	}

	symbols := make([]models.StockSymbol, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// Skip header row
			continue
		}
		if len(row) < 2 {
			continue
		}

		symbol := models.StockSymbol{
			Ticker: NormalizeTicker(row[0]),
			Name:   row[1],
		}
		if len(row) > 2 {
			symbol.Exchange = row[2]
		}
		if symbol.Ticker == "" || symbol.Name == "" {
			continue
		}
		symbols = append(symbols, symbol)
	}

	return symbols, nil
}
