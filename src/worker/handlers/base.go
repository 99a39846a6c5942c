package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"networth/src/clients/fyers"
	"networth/src/clients/plaid"
	"networth/src/config"
	"networth/src/database"
	"networth/src/repositories"
	"networth/src/utils"
	aws_handler "networth/src/utils/aws"
	"networth/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	TokensController controllers.TokensControllerI
	PlaidController  controllers.PlaidControllerI
	Logger           *logrus.Logger
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := resolveProviderSecrets(cfg); err != nil {
		return nil, err
	}

	controller := controllers.NewController(
		repositories.NewTokenRepository(db),
		repositories.NewFyersTokenRepository(db),
		fyers.NewClient(cfg),
		plaid.NewClient(cfg),
	)
	return &Handler{
		TokensController: controller,
		PlaidController:  controller,
		Logger:           utils.NewLogger(logrus.InfoLevel, false, ""),
	}, nil
}

// requestContext bounds the request and carries the service logger so
// controllers and provider clients all log through the same instance.
func (h *Handler) requestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	if h.Logger != nil {
		ctx = utils.WithLogger(ctx, h.Logger)
	}
	return ctx, cancel
}

// resolveProviderSecrets fills Plaid credentials from Secrets Manager when
// they are not set in config.
func resolveProviderSecrets(cfg *config.Config) error {
	if cfg.AWS.Region == "" || cfg.AWS.PlaidSecretID == "" || cfg.ExternalClients.Plaid.Secret != "" {
		return nil
	}

	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return err
	}

	var plaidSecret struct {
		ClientID string `json:"client_id"`
		Secret   string `json:"secret"`
	}
	if err := awsHandler.SecretManager.GetSecretJSON(cfg.AWS.PlaidSecretID, &plaidSecret); err != nil {
		return err
	}
	cfg.ExternalClients.Plaid.ClientID = plaidSecret.ClientID
	cfg.ExternalClients.Plaid.Secret = plaidSecret.Secret
	logrus.Info("plaid credentials resolved from secrets manager")
	return nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
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
