package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupRoutes() {
	// Middleware stack
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))

	// API versioning group
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		r.Route("/users/{userID}/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettingsSnapshot)   // GET    /api/v1/users/{userID}/settings
			r.Delete("/", s.handleClearSettings)      // DELETE /api/v1/users/{userID}/settings
			r.Get("/display", s.handleGetDisplaySettings)
			r.Put("/display", s.handleSetDisplaySettings)
			r.Get("/language", s.handleGetLanguage)
			r.Put("/language", s.handleSetLanguage)
			r.Get("/watch", s.handleWatchSettings)
		})
	})
}
