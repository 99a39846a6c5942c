package controllers

import (
	"context"

	"networth/src/clients/plaid"
	"networth/src/models"
	"networth/src/repositories"
	"networth/src/schemas"
	"networth/src/utils"
)

type PlaidControllerI interface {
	CreatePlaidLinkToken(ctx context.Context, userID string) (*schemas.PlaidLinkTokenResponse, error)
	ExchangePlaidPublicToken(ctx context.Context, req *schemas.PlaidExchangeRequest) (*schemas.SaveTokenResponse, error)
	GetPlaidTransactions(ctx context.Context, req *schemas.PlaidTransactionsRequest) (*plaid.TransactionsResponse, error)
}

func (c *Controller) CreatePlaidLinkToken(ctx context.Context, userID string) (*schemas.PlaidLinkTokenResponse, error) {
	if userID == "" {
		return nil, utils.ValidationError("userId is required")
	}
	resp, err := c.PlaidClient.CreateLinkToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &schemas.PlaidLinkTokenResponse{LinkToken: resp.LinkToken}, nil
}

// ExchangePlaidPublicToken swaps a Plaid public token for an access token
// and stores it as the user's active Plaid credential.
func (c *Controller) ExchangePlaidPublicToken(ctx context.Context, req *schemas.PlaidExchangeRequest) (*schemas.SaveTokenResponse, error) {
	if err := missingFields(map[string]string{
		"public_token": req.PublicToken,
		"userId":       req.UserID,
	}); err != nil {
		return nil, err
	}

	exchanged, err := c.PlaidClient.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		return nil, err
	}

	token := &models.OAuthToken{
		UserID:      req.UserID,
		AppID:       PlaidAppID,
		AccessToken: exchanged.AccessToken,
		TokenType:   "Bearer",
		Source:      models.TokenSourceOAuthExchange,
	}
	if exchanged.ItemID != "" {
		itemID := exchanged.ItemID
		token.Scope = &itemID
	}

	tx, err := c.TokenRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	replaced, err := c.TokenRepo.DeactivateActive(ctx, req.UserID, PlaidAppID, tx)
	if err != nil {
		return nil, err
	}
	if err = c.TokenRepo.Create(ctx, token, tx); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &schemas.SaveTokenResponse{
		Success:        true,
		Message:        "Token exchanged and saved successfully",
		TokenID:        token.ID,
		UserID:         req.UserID,
		ReplacedTokens: replaced,
	}, nil
}

// GetPlaidTransactions pulls a date range of transactions with the user's
// stored Plaid credential.
func (c *Controller) GetPlaidTransactions(ctx context.Context, req *schemas.PlaidTransactionsRequest) (*plaid.TransactionsResponse, error) {
	if err := missingFields(map[string]string{
		"userId":    req.UserID,
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
	}); err != nil {
		return nil, err
	}

	token, err := c.TokenRepo.GetActive(ctx, req.UserID, PlaidAppID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, utils.NotFound("no linked Plaid item for user")
		}
		return nil, err
	}

	return c.PlaidClient.GetTransactions(ctx, token.AccessToken, req.StartDate, req.EndDate)
}
