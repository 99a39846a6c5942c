package api

import (
	"net/http"
	"time"

	handlers "networth/src/api/handlers"
	"networth/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
)

type Server struct {
	Router    *chi.Mux
	Handler   handlers.Handler
	TokenAuth *jwtauth.JWTAuth
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   *handler,
		TokenAuth: jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil),
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(cors.AllowAll().Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	// Symbol autocomplete is public; it serves the login page search box too.
	s.Router.Get("/api/stocks", s.Handler.SearchStocks)

	s.Router.Group(func(r chi.Router) {
		// The verifier only parses the token; each operation decides what an
		// absent identity means (deletes are a silent no-op).
		r.Use(jwtauth.Verifier(s.TokenAuth))

		r.Route("/api/holdings", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllHoldings)
			r.Post("/", s.Handler.CreateHolding)
			r.Get("/summary", s.Handler.GetPortfolioSummary)
			r.Get("/export", s.Handler.ExportHoldings)
			r.Put("/{id}", s.Handler.UpdateHolding)
			r.Delete("/{id}", s.Handler.DeleteHolding)
		})

		r.Route("/api/wishlist", func(r chi.Router) {
			r.Get("/", s.Handler.GetWishlist)
			r.Post("/", s.Handler.AddToWishlist)
			r.Delete("/{id}", s.Handler.RemoveFromWishlist)
		})
	})
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
