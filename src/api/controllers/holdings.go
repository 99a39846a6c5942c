package controllers

import (
	"context"
	"fmt"

	"networth/src/models"
	"networth/src/repositories"
	"networth/src/schemas"
	"networth/src/services"
	"networth/src/utils"

	"github.com/xuri/excelize/v2"
)

type HoldingsControllerI interface {
	CreateHolding(ctx context.Context, userID string, req *schemas.CreateHoldingRequest) (string, error)
	UpdateHolding(ctx context.Context, userID, id string, patch *schemas.UpdateHoldingRequest) error
	DeleteHolding(ctx context.Context, userID, id string) error
	GetAllHoldings(ctx context.Context, userID string) ([]models.Holding, error)
	GetPortfolioSummary(ctx context.Context, userID string) (*schemas.PortfolioSummary, error)
	ExportHoldingsXLSX(ctx context.Context, userID string) (*excelize.File, error)
}

func validateCreateHolding(req *schemas.CreateHoldingRequest) error {
	if !models.ValidAssetType(req.Type) {
		return utils.ValidationError(fmt.Sprintf("unknown asset type: %s", req.Type))
	}
	if req.Name == "" {
		return utils.ValidationError("name is required")
	}
	if req.Quantity <= 0 {
		return utils.ValidationError("quantity must be positive")
	}
	if req.BuyPrice < 0 {
		return utils.ValidationError("buy price cannot be negative")
	}
	if req.CurrentPrice != nil && *req.CurrentPrice < 0 {
		return utils.ValidationError("current price cannot be negative")
	}
	return nil
}

// CreateHolding records a purchase. A non-empty ticker merges into the
// existing holding for that ticker: quantities add up, the cost basis
// becomes the weighted average, and the current price is overwritten with
// the incoming quote. Anything else inserts a new holding. Prices are
// normalized into the reporting currency before they are stored; the
// original currency is gone after this point.
//
// The lookup and the conditional write run inside one transaction with the
// matched row locked, so concurrent recordings of the same ticker cannot
// produce duplicates or a stale average.
func (c *Controller) CreateHolding(ctx context.Context, userID string, req *schemas.CreateHoldingRequest) (string, error) {
	if userID == "" {
		return "", utils.NotAuthenticated()
	}
	if err := validateCreateHolding(req); err != nil {
		return "", err
	}

	currentPrice := req.BuyPrice
	if req.CurrentPrice != nil {
		currentPrice = *req.CurrentPrice
	}
	buyPrice := utils.ConvertToReporting(req.BuyPrice, req.Currency)
	currentPrice = utils.ConvertToReporting(currentPrice, req.Currency)

	ticker := utils.NormalizeTicker(req.Ticker)

	holding := &models.Holding{
		UserID:       userID,
		Type:         req.Type,
		Name:         req.Name,
		Quantity:     req.Quantity,
		BuyPrice:     buyPrice,
		CurrentPrice: currentPrice,
		Currency:     utils.ReportingCurrency,
	}
	if ticker != "" {
		holding.Ticker = &ticker
	}

	// Holdings without a ticker are never deduplicated.
	if ticker == "" {
		if err := c.HoldingRepo.Create(ctx, holding, nil); err != nil {
			return "", err
		}
		return holding.ID, nil
	}

	id, err := c.upsertByTicker(ctx, userID, holding, ticker)
	if repositories.IsUniqueViolation(err) {
		// A racing first-time create of the same ticker committed between the
		// lock probe and our insert. The row exists now, so a second pass
		// finds it under the lock and merges.
		id, err = c.upsertByTicker(ctx, userID, holding, ticker)
	}
	return id, err
}

// upsertByTicker merges the incoming position into the user's existing
// holding for ticker, or inserts a new row when none is held. The row lock
// serializes concurrent recordings of the same ticker.
func (c *Controller) upsertByTicker(ctx context.Context, userID string, holding *models.Holding, ticker string) (string, error) {
	tx, err := c.HoldingRepo.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	existing, err := c.HoldingRepo.GetByTickerForUpdate(ctx, userID, ticker, tx)
	if err != nil && !repositories.IsNotFound(err) {
		return "", err
	}

	if existing != nil {
		totalQuantity := existing.Quantity + holding.Quantity
		averageCost := (existing.Quantity*existing.BuyPrice + holding.Quantity*holding.BuyPrice) / totalQuantity

		err = c.HoldingRepo.UpdatePosition(ctx, existing.ID, totalQuantity, averageCost, holding.CurrentPrice, tx)
		if err != nil {
			return "", err
		}
		if err = tx.Commit(ctx); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	err = c.HoldingRepo.Create(ctx, holding, tx)
	if err != nil {
		return "", err
	}
	if err = tx.Commit(ctx); err != nil {
		return "", err
	}
	return holding.ID, nil
}

// UpdateHolding is the correction path: it addresses one holding by id and
// bypasses the ticker merge logic entirely.
func (c *Controller) UpdateHolding(ctx context.Context, userID, id string, patch *schemas.UpdateHoldingRequest) error {
	if userID == "" {
		return utils.NotAuthenticated()
	}

	holding, err := c.HoldingRepo.GetByID(ctx, userID, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return utils.NotFound(fmt.Sprintf("no holding found with id %s", id))
		}
		return err
	}

	if patch.Type != nil {
		if !models.ValidAssetType(*patch.Type) {
			return utils.ValidationError(fmt.Sprintf("unknown asset type: %s", *patch.Type))
		}
		holding.Type = *patch.Type
	}
	if patch.Name != nil {
		holding.Name = *patch.Name
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return utils.ValidationError("quantity must be positive")
		}
		holding.Quantity = *patch.Quantity
	}
	if patch.Ticker != nil {
		ticker := utils.NormalizeTicker(*patch.Ticker)
		if ticker == "" {
			holding.Ticker = nil
		} else {
			holding.Ticker = &ticker
		}
	}

	// Patched prices are denominated in the patch currency and normalized the
	// same way the record path does; stored values are already normalized.
	currency := utils.ReportingCurrency
	if patch.Currency != nil {
		currency = *patch.Currency
	}
	if patch.BuyPrice != nil {
		if *patch.BuyPrice < 0 {
			return utils.ValidationError("buy price cannot be negative")
		}
		holding.BuyPrice = utils.ConvertToReporting(*patch.BuyPrice, currency)
	}
	if patch.CurrentPrice != nil {
		if *patch.CurrentPrice < 0 {
			return utils.ValidationError("current price cannot be negative")
		}
		holding.CurrentPrice = utils.ConvertToReporting(*patch.CurrentPrice, currency)
	}
	holding.Currency = utils.ReportingCurrency

	if err := c.HoldingRepo.Update(ctx, holding); err != nil {
		if repositories.IsNotFound(err) {
			return utils.NotFound(fmt.Sprintf("no holding found with id %s", id))
		}
		if repositories.IsUniqueViolation(err) {
			return utils.ValidationError(fmt.Sprintf("another holding already uses ticker %s", *holding.Ticker))
		}
		return err
	}
	return nil
}

// DeleteHolding removes a holding by id. Without a bound identity it is a
// silent no-op rather than a 401.
func (c *Controller) DeleteHolding(ctx context.Context, userID, id string) error {
	if userID == "" {
		return nil
	}
	return c.HoldingRepo.Delete(ctx, userID, id)
}

func (c *Controller) GetAllHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	if userID == "" {
		return nil, utils.NotAuthenticated()
	}
	return c.HoldingRepo.GetAllByUserID(ctx, userID)
}

func (c *Controller) GetPortfolioSummary(ctx context.Context, userID string) (*schemas.PortfolioSummary, error) {
	holdings, err := c.GetAllHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return services.Summarize(holdings), nil
}

func (c *Controller) ExportHoldingsXLSX(ctx context.Context, userID string) (*excelize.File, error) {
	holdings, err := c.GetAllHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.ReportService.GenerateXLSXReport(ctx, holdings)
}
