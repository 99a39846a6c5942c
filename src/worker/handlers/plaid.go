package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"networth/src/schemas"
	"networth/src/utils"
)

func (h *Handler) CreatePlaidLinkToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 30*time.Second)
	defer cancel()

	var req = new(schemas.PlaidLinkTokenRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.PlaidController.CreatePlaidLinkToken(ctx, req.UserID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) ExchangePlaidPublicToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 30*time.Second)
	defer cancel()

	var req = new(schemas.PlaidExchangeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.PlaidController.ExchangePlaidPublicToken(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) GetPlaidTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 30*time.Second)
	defer cancel()

	var req = new(schemas.PlaidTransactionsRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.PlaidController.GetPlaidTransactions(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}
