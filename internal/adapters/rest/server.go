package rest

import (
	"context"
	core_port "estate-agent-service/internal/core/port"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter собирает все маршруты API.
func NewRouter(cfg RouterConfig, listings *ListingsHandler, favourites *FavouritesHandler, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listings.SearchListings)
			r.Post("/search", listings.SearchListingsByBody)
			r.Get("/{listingID}", listings.GetListingDetails)
		})
		r.Get("/filters/options", listings.GetFilterOptions)

		r.Route("/favourites", func(r chi.Router) {
			r.Get("/", favourites.GetFavourites)
			r.Post("/", favourites.AddToFavourites)
			r.Delete("/", favourites.ClearFavourites)
			// drop объявлен до {listingID}, иначе chi не различит их
			r.Post("/drop", favourites.DropToFavourites)
			r.Get("/{listingID}", favourites.CheckFavourite)
			r.Delete("/{listingID}", favourites.RemoveFromFavourites)
			r.Post("/{listingID}/toggle", favourites.ToggleFavourite)
		})
	})

	return r
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// Start блокируется до остановки сервера.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
