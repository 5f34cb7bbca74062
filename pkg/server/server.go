// Package server exposes treemap rendering and interactive zoom sessions
// over HTTP.
//
// Stateless rendering:
//
//	GET  /api/render?source=...&focus=World&format=svg
//
// Interactive sessions keep one zoomable view per client. Every mutating
// call returns the new focus; frames are fetched separately so clients can
// poll them while a transition animates:
//
//	POST   /api/sessions                    {"source": "...", "width": 1600}
//	GET    /api/sessions/{id}/frame?format=svg|json&settle=true
//	POST   /api/sessions/{id}/drill-in      {"path": "World"} or {"x": 10, "y": 20}
//	POST   /api/sessions/{id}/drill-out
//	POST   /api/sessions/{id}/reset
//	POST   /api/sessions/{id}/focus         {"path": "World/Europe"}
//	POST   /api/sessions/{id}/resize        {"width": 800, "height": 400}
//	GET    /api/sessions/{id}/selection
//	POST   /api/sessions/{id}/selection     {"section": "...", "keyword": "..."}
//	DELETE /api/sessions/{id}
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treezoom/pkg/buildinfo"
	"github.com/matzehuels/treezoom/pkg/pipeline"
	"github.com/matzehuels/treezoom/pkg/session"
	"github.com/matzehuels/treezoom/pkg/view"
)

// Config holds server settings. Defaults supplies per-request defaults
// (title, style, unit, canvas); request fields override it.
type Config struct {
	Defaults       pipeline.Options
	SessionTTL     time.Duration
	MaxSessions    int
	RequestTimeout time.Duration
	// Clock drives session animations. Nil uses wall time.
	Clock view.Clock
}

func (c *Config) setDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = 1000
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
	cfg      Config
}

// New creates and configures the HTTP server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		runner:   runner,
		sessions: session.NewMemoryStore(session.WithMaxSessions(cfg.MaxSessions)),
		logger:   logger,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the session store.
func (s *Server) Sessions() session.Store { return s.sessions }

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/render", s.handleRender)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.loadSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/frame", s.handleFrame)
			r.Post("/drill-in", s.handleDrillIn)
			r.Post("/drill-out", s.handleDrillOut)
			r.Post("/reset", s.handleReset)
			r.Post("/focus", s.handleFocus)
			r.Post("/resize", s.handleResize)
			r.Get("/selection", s.handleGetSelection)
			r.Post("/selection", s.handleSetSelection)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"build":    buildinfo.Get(),
	})
}

// RunCleanup removes expired sessions every interval until ctx is done.
func (s *Server) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, _ := s.sessions.Cleanup(ctx); n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
