// Package api serves the job search service as a small JSON REST API.
package api

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server is the REST front end for a jobs.Service.
type Server struct {
	router *chi.Mux
	svc    *jobs.Service
}

// NewServer builds a Server with its routes and middleware installed.
func NewServer(svc *jobs.Service) *Server {
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(os.Stderr, "", log.LstdFlags),
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/metrics", s.handleMetrics)
	s.router.Route("/api/jobs", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/match", s.handleMatch)
		r.Post("/recommend", s.handleRecommend)
	})
}

// Router returns the HTTP handler to serve.
func (s *Server) Router() http.Handler {
	return s.router
}
