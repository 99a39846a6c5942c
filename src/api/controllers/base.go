package controllers

import (
	"networth/src/repositories"
	"networth/src/services"
)

type Controller struct {
	HoldingRepo    repositories.HoldingRepository
	WishlistRepo   repositories.WishlistRepository
	SymbolsService services.SymbolsServiceI
	ReportService  services.ReportServiceI
}

func NewController(
	holdingRepo repositories.HoldingRepository,
	wishlistRepo repositories.WishlistRepository,
	symbolsService services.SymbolsServiceI,
	reportService services.ReportServiceI,
) *Controller {
	return &Controller{
		HoldingRepo:    holdingRepo,
		WishlistRepo:   wishlistRepo,
		SymbolsService: symbolsService,
		ReportService:  reportService,
	}
}
