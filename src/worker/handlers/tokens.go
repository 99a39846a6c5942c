package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"networth/src/schemas"
	"networth/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 30*time.Second)
	defer cancel()

	var req = new(schemas.ExchangeTokenRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.TokensController.ExchangeFyersCode(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) SaveToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	var req = new(schemas.SaveTokenRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.TokensController.SaveToken(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	appID := r.URL.Query().Get("appId")
	includeToken := r.URL.Query().Get("includeToken") == "true"

	resp, err := h.TokensController.GetActiveToken(ctx, userID, appID, includeToken)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	var req = new(schemas.RevokeTokenRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	resp, err := h.TokensController.RevokeToken(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, 200)
}

func (h *Handler) SaveFyersToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	var req = new(schemas.SaveFyersTokenRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	token, err := h.TokensController.SaveFyersToken(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, token, 200)
}

func (h *Handler) GetFyersToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	token, err := h.TokensController.GetFyersToken(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, token, 200)
}

func (h *Handler) ListFyersTokens(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	tokens, err := h.TokensController.ListFyersTokens(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, tokens, 200)
}
