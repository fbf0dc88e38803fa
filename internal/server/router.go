package server

import (
	"net/http"

	"github.com/agentstation/glossync/internal/server/handlers"
	"github.com/agentstation/glossync/internal/server/middleware"
	"github.com/agentstation/glossync/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.refresher, s.events, s.version, s.startTime)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)

	mux.HandleFunc(prefix+"/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleRefresh(w, r)
	})

	mux.HandleFunc(prefix+"/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleEvent(w, r)
	})

	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	// Authentication (if an API key is configured)
	if cfg.APIKey != "" {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		authConfig.HeaderName = cfg.AuthHeader
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", "/metrics"}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// Logging, request IDs and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
	)(handler)
}
