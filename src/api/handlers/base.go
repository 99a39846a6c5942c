package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"networth/src/api/controllers"
	"networth/src/config"
	"networth/src/database"
	"networth/src/repositories"
	"networth/src/services"
	"networth/src/utils"
	redis_utils "networth/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	HoldingsController controllers.HoldingsControllerI
	WishlistController controllers.WishlistControllerI
	StocksController   controllers.StocksControllerI
	Logger             *logrus.Logger
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	// Redis is optional: without it symbol search just skips its query cache.
	var cacheHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		cacheHandler, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			logrus.Warnf("redis unavailable, continuing without cache: %v", err)
			cacheHandler = nil
		}
	}

	controller := controllers.NewController(
		repositories.NewHoldingRepository(db),
		repositories.NewWishlistRepository(db),
		services.NewSymbolsService(cfg.Symbols.MasterFile, cacheHandler),
		services.NewReportService(),
	)
	return &Handler{
		HoldingsController: controller,
		WishlistController: controller,
		StocksController:   controller,
		Logger:             utils.NewLogger(logrus.InfoLevel, false, ""),
	}, nil
}

// requestContext bounds the request and carries the service logger so
// controllers, services and clients all log through the same instance.
func (h *Handler) requestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	if h.Logger != nil {
		ctx = utils.WithLogger(ctx, h.Logger)
	}
	return ctx, cancel
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// identityFromRequest returns the caller's user id from the verified JWT, or
// the empty string when no identity is bound to the request.
func identityFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
