package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/usersettings"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	store      usersettings.Store
	logger     usersettings.Logger
	router     *chi.Mux
	httpServer *http.Server

	mu     sync.Mutex
	caches map[string]*usersettings.Cache
}

// Config holds configuration for the API server.
// TODO: TLS config and per-route timeouts.
type Config struct {
	ListenAddress string
	Store         usersettings.Store
	Logger        usersettings.Logger
}

// NewServer creates and configures a new API server instance.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = usersettings.NewDefaultLogger()
	}
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}

	s := &Server{
		store:  cfg.Store,
		logger: cfg.Logger,
		router: chi.NewRouter(),
		caches: make(map[string]*usersettings.Cache),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: s.router,
		// Configure timeouts to prevent resource exhaustion. The watch
		// endpoint streams indefinitely, so writes are not bounded here.
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// cacheFor returns the settings cache for userID, creating and registering it
// on first use. Every handler touching the same user shares one cache, so
// watch streams observe the writes made through the mutation endpoints.
func (s *Server) cacheFor(userID string) *usersettings.Cache {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.caches[userID]
	if !ok {
		c = usersettings.New(s.store, userID, usersettings.WithLogger(s.logger))
		s.caches[userID] = c
	}
	return c
}

// Start runs the HTTP server.
// This method is blocking and will only return when the server is shut down
// or an unrecoverable error occurs (e.g., failure to bind to the address).
// If non-blocking behavior is desired, the caller should run this method
// in a separate goroutine.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server and closes every per-user cache.
// The injected store is not closed; the caller owns it.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("API server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.mu.Lock()
	for _, c := range s.caches {
		_ = c.Close()
	}
	s.caches = make(map[string]*usersettings.Cache)
	s.mu.Unlock()

	s.logger.Info("API server stopped gracefully")
	return nil
}
