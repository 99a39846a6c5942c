package controllers

import (
	"networth/src/clients/fyers"
	"networth/src/clients/plaid"
	"networth/src/repositories"
)

// PlaidAppID labels Plaid-issued tokens in the shared token store.
const PlaidAppID = "plaid"

type Controller struct {
	TokenRepo      repositories.TokenRepository
	FyersTokenRepo repositories.FyersTokenRepository
	FyersClient    fyers.FyersServiceClientI
	PlaidClient    plaid.PlaidServiceClientI
}

func NewController(
	tokenRepo repositories.TokenRepository,
	fyersTokenRepo repositories.FyersTokenRepository,
	fyersClient fyers.FyersServiceClientI,
	plaidClient plaid.PlaidServiceClientI,
) *Controller {
	return &Controller{
		TokenRepo:      tokenRepo,
		FyersTokenRepo: fyersTokenRepo,
		FyersClient:    fyersClient,
		PlaidClient:    plaidClient,
	}
}
