// Package api - JSON API for the fee questionnaire
// The API is ONLY responsible for: session handling, input decoding, response serialization.
// Step logic lives in the wizard.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"fee-wizard/adapters/storage"
	"fee-wizard/core/wizard"
	"fee-wizard/internal/config"
	"fee-wizard/internal/logging"
)

// Server is the API server
type Server struct {
	wizard  *wizard.Wizard
	store   storage.Store
	config  config.ServerConfig
	version string
	mux     *http.ServeMux
	handler http.Handler
	limiter *RateLimiter
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(w *wizard.Wizard, store storage.Store, cfg config.ServerConfig, version string) *Server {
	s := &Server{
		wizard:  w,
		store:   store,
		config:  cfg,
		version: version,
		mux:     http.NewServeMux(),
		logger:  logging.Component("api"),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	s.registerRoutes()
	s.handler = s.withMiddleware(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Journey endpoints
	s.mux.HandleFunc("POST /api/v1/journey", s.handleStartJourney)
	s.mux.HandleFunc("GET /api/v1/steps/{step}", s.handleViewStep)
	s.mux.HandleFunc("POST /api/v1/steps/{step}", s.handleSubmitStep)
	s.mux.HandleFunc("GET /api/v1/result", s.handleResult)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// Handler returns the routes wrapped in middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	handler = s.bodyLimitMiddleware(handler)
	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
	}
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the server and blocks until it stops
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout.Std(),
		WriteTimeout: s.config.WriteTimeout.Std(),
	}
	s.logger.Info("listening", zap.String("address", s.config.Address))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"service":     "fee-wizard",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}
