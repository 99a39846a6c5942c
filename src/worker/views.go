package worker

import (
	"context"
	"net/http"
	"time"

	"networth/src/config"
	"networth/src/scheduler"
	"networth/src/utils"
	handlers "networth/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router      *chi.Mux
	Handler     handlers.Handler
	ExpirySweep *scheduler.ScheduledTask
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()

	if err := server.startExpirySweep(); err != nil {
		return nil, err
	}
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(cors.AllowAll().Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/oauth", func(r chi.Router) {
		r.Post("/exchange-token", s.Handler.ExchangeToken)
		r.Post("/save-token", s.Handler.SaveToken)
		r.Get("/get-token/{userId}", s.Handler.GetToken)
		r.Post("/revoke-token", s.Handler.RevokeToken)
	})

	s.Router.Route("/api", func(r chi.Router) {
		r.Post("/save-token", s.Handler.SaveFyersToken)
		r.Get("/get-token/{userId}", s.Handler.GetFyersToken)
		r.Get("/get-tokens", s.Handler.ListFyersTokens)
	})

	s.Router.Route("/plaid", func(r chi.Router) {
		r.Post("/link-token", s.Handler.CreatePlaidLinkToken)
		r.Post("/exchange-token", s.Handler.ExchangePlaidPublicToken)
		r.Post("/transactions", s.Handler.GetPlaidTransactions)
	})
}

// startExpirySweep deactivates tokens past their expiry horizon once an hour.
func (s *Server) startExpirySweep() error {
	logger := s.Handler.Logger
	if logger == nil {
		logger = logrus.New()
	}
	sweep, err := scheduler.NewScheduledTask("@hourly", func() {
		ctx, cancel := context.WithTimeout(utils.WithLogger(context.Background(), logger), time.Minute)
		defer cancel()

		count, err := s.Handler.TokensController.DeactivateExpiredTokens(ctx)
		if err != nil {
			logger.Errorf("token expiry sweep failed: %v", err)
			return
		}
		if count > 0 {
			logger.Infof("token expiry sweep deactivated %d token(s)", count)
		}
	})
	if err != nil {
		return err
	}
	s.ExpirySweep = sweep
	return nil
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
