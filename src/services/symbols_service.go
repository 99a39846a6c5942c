package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"networth/src/models"
	"networth/src/utils"
	redis_utils "networth/src/utils/redis"
)

const (
	symbolsReloadAfter = 24 * time.Hour
	searchResultLimit  = 20
	searchCacheTTL     = time.Hour
)

type SymbolsServiceI interface {
	Search(ctx context.Context, query string) ([]models.StockSymbol, error)
}

// SymbolsService serves ticker autocomplete from the offline-generated
// symbol master file. The parsed list is held in an in-process cache and
// per-query results are cached in Redis when a handler is available.
type SymbolsService struct {
	MasterFile   string
	CacheHandler *redis_utils.RedisHandler
	symbols      *utils.Cache[[]models.StockSymbol]
}

func NewSymbolsService(masterFile string, cacheHandler *redis_utils.RedisHandler) *SymbolsService {
	return &SymbolsService{
		MasterFile:   masterFile,
		CacheHandler: cacheHandler,
		symbols:      utils.NewCache[[]models.StockSymbol](),
	}
}

func (s *SymbolsService) loadSymbols() ([]models.StockSymbol, error) {
	if symbols, ok := s.symbols.Get(); ok {
		return symbols, nil
	}
	symbols, err := utils.CSVToStockSymbols(s.MasterFile)
	if err != nil {
		return nil, err
	}
	s.symbols.Set(symbols, symbolsReloadAfter)
	return symbols, nil
}

// Search returns up to searchResultLimit symbols whose ticker or name
// contains the query, ticker-prefix matches first.
func (s *SymbolsService) Search(ctx context.Context, query string) ([]models.StockSymbol, error) {
	logger := utils.LoggerFromContext(ctx)
	normalized := strings.ToUpper(strings.TrimSpace(query))
	if normalized == "" {
		return []models.StockSymbol{}, nil
	}

	cacheKey := fmt.Sprintf("symbols:search:%s", normalized)
	if s.CacheHandler != nil {
		var cached []models.StockSymbol
		if err := s.CacheHandler.Get(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	symbols, err := s.loadSymbols()
	if err != nil {
		return nil, err
	}

	prefix := make([]models.StockSymbol, 0, searchResultLimit)
	contains := make([]models.StockSymbol, 0, searchResultLimit)
	for _, symbol := range symbols {
		if strings.HasPrefix(symbol.Ticker, normalized) {
			prefix = append(prefix, symbol)
		} else if strings.Contains(symbol.Ticker, normalized) ||
			strings.Contains(strings.ToUpper(symbol.Name), normalized) {
			contains = append(contains, symbol)
		}
		if len(prefix) >= searchResultLimit {
			break
		}
	}

	results := prefix
	for _, symbol := range contains {
		if len(results) >= searchResultLimit {
			break
		}
		results = append(results, symbol)
	}

	if s.CacheHandler != nil {
		if err := s.CacheHandler.Set(cacheKey, results, searchCacheTTL); err != nil {
			logger.Warnf("could not cache symbol search results: %v", err)
		}
	}

	return results, nil
}
