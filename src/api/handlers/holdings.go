package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"networth/src/schemas"
	"networth/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	holdings, err := h.HoldingsController.GetAllHoldings(ctx, identityFromRequest(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, holdings, 200)
}

func (h *Handler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	var req = new(schemas.CreateHoldingRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	id, err := h.HoldingsController.CreateHolding(ctx, identityFromRequest(r), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.HoldingIDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.HandleErrors(w, utils.ValidationError("missing id URL parameter"))
		return
	}

	var patch = new(schemas.UpdateHoldingRequest)
	if err := json.NewDecoder(r.Body).Decode(patch); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	if err := h.HoldingsController.UpdateHolding(ctx, identityFromRequest(r), id, patch); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.HoldingIDResponse{ID: id}, 200)
}

func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.HandleErrors(w, utils.ValidationError("missing id URL parameter"))
		return
	}

	if err := h.HoldingsController.DeleteHolding(ctx, identityFromRequest(r), id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	summary, err := h.HoldingsController.GetPortfolioSummary(ctx, identityFromRequest(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, summary, 200)
}

func (h *Handler) ExportHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 30*time.Second)
	defer cancel()

	file, err := h.HoldingsController.ExportHoldingsXLSX(ctx, identityFromRequest(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	if err := file.Write(w); err != nil {
		utils.LoggerFromContext(ctx).Errorf("error writing xlsx response: %v", err)
	}
}
