package handlers

import (
	"net/http"
	"time"
)

func (h *Handler) SearchStocks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r, 10*time.Second)
	defer cancel()

	symbols, err := h.StocksController.SearchStocks(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, symbols, 200)
}
