package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"networth/src/schemas"
	"networth/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	items, err := h.WishlistController.GetWishlist(ctx, identityFromRequest(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, items, 200)
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	var req = new(schemas.WishlistItemRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	item, err := h.WishlistController.AddToWishlist(ctx, identityFromRequest(r), req.Ticker)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, item, http.StatusCreated)
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.HandleErrors(w, utils.ValidationError("missing id URL parameter"))
		return
	}

	if err := h.WishlistController.RemoveFromWishlist(ctx, identityFromRequest(r), id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
