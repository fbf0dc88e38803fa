// Package server provides the HTTP control surface of the connector:
// health, on-demand refresh, the Egeria event webhook and Prometheus metrics.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/glossync/internal/server/handlers"
	"github.com/agentstation/glossync/internal/server/middleware"
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	refresher   handlers.Refresher
	events      handlers.EventSink
	metrics     http.Handler
	rateLimiter *middleware.RateLimiter
	logger      *zerolog.Logger
	config      Config
	version     string
	startTime   time.Time
}

// New creates a new server instance. metrics may be nil, in which case
// /metrics is not served.
func New(refresher handlers.Refresher, events handlers.EventSink, metrics http.Handler, logger *zerolog.Logger, cfg Config, version string) (*Server, error) {
	if refresher == nil {
		return nil, &errors.ValidationError{Field: "refresher", Message: "cannot be nil"}
	}
	if events == nil {
		return nil, &errors.ValidationError{Field: "events", Message: "cannot be nil"}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultConfig().AuthHeader
	}

	s := &Server{
		refresher: refresher,
		events:    events,
		metrics:   metrics,
		logger:    logger,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}
	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return logging.WithLogger(context.Background(), s.logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Str("prefix", s.config.PathPrefix).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapResource("listen", "http server", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("Shutting down HTTP server")
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close releases background resources.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
