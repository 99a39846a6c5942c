package controllers

import (
	"context"

	"networth/src/models"
	"networth/src/utils"
)

type WishlistControllerI interface {
	GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID, ticker string) (*models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, id string) error
}

func (c *Controller) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	if userID == "" {
		return nil, utils.NotAuthenticated()
	}
	return c.WishlistRepo.GetAllByUserID(ctx, userID)
}

func (c *Controller) AddToWishlist(ctx context.Context, userID, ticker string) (*models.WishlistItem, error) {
	if userID == "" {
		return nil, utils.NotAuthenticated()
	}
	normalized := utils.NormalizeTicker(ticker)
	if normalized == "" {
		return nil, utils.ValidationError("ticker is required")
	}

	item := &models.WishlistItem{UserID: userID, Ticker: normalized}
	if err := c.WishlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Controller) RemoveFromWishlist(ctx context.Context, userID, id string) error {
	if userID == "" {
		return utils.NotAuthenticated()
	}
	return c.WishlistRepo.Delete(ctx, userID, id)
}
