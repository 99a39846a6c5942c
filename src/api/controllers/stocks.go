package controllers

import (
	"context"

	"networth/src/models"
)

type StocksControllerI interface {
	SearchStocks(ctx context.Context, query string) ([]models.StockSymbol, error)
}

// SearchStocks is unauthenticated autocomplete over the symbol master list.
func (c *Controller) SearchStocks(ctx context.Context, query string) ([]models.StockSymbol, error) {
	return c.SymbolsService.Search(ctx, query)
}
