// Package api wires the HTTP surface: routing, authentication gate, letter
// CRUD, generation and export handlers.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/config"
	"github.com/ignite/letterdesk/internal/genai"
	"github.com/ignite/letterdesk/internal/prompt"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// Server represents the API server.
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
	router  *chi.Mux
}

// NewServer creates the API server. authManager may be nil in local
// development; the /api subtree is then served without a session gate.
func NewServer(
	cfg config.ServerConfig,
	letters *letter.Service,
	prompts *prompt.Builder,
	gen genai.Client,
	authManager *auth.Manager,
	db *sql.DB,
	redisClient *redis.Client,
) *Server {
	handlers := NewHandlers(letters, prompts, gen)
	health := NewHealthChecker(db, redisClient)
	router := SetupRoutes(cfg, handlers, health, authManager)

	return &Server{
		config:  cfg,
		handler: router,
		router:  router,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.handler,
		// Generation calls can take tens of seconds; the write timeout has
		// to cover the slowest upstream response plus export streaming.
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
