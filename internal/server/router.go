// Package server assembles the HTTP routes of the service.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/filmdb/movies-api/internal/auth"
	"github.com/filmdb/movies-api/internal/catalog"
	"github.com/filmdb/movies-api/internal/httpx"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/middleware"
	"github.com/filmdb/movies-api/internal/models"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Directors      catalog.Store[models.Director]
	Movies         catalog.Store[models.Movie]
	Auth           *auth.Service
	Tokens         middleware.TokenVerifier
	AllowedOrigins []string
	Logger         logging.Logger
}

func NewRouter(d Deps) http.Handler {
	requireAuth := middleware.RequireAuth(d.Tokens)
	authHandler := auth.NewHandler(d.Auth, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, models.StatusResponse{
			Status:    "OK",
			Message:   "Server is running",
			Timestamp: time.Now().UTC(),
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/directors", func(r chi.Router) {
		catalog.NewDirectors(d.Directors, d.Logger).Mount(r, requireAuth)
	})

	r.Route("/movies", func(r chi.Router) {
		catalog.NewMovies(d.Movies, d.Logger).Mount(r, requireAuth)
	})

	return r
}
