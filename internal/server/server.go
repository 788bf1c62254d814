package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
)

// Session is the running visualisation the server exposes.
type Session interface {
	Frame() model.Frame
	SetStep(ctx context.Context, step int) (model.Frame, error)
	Next(ctx context.Context) (model.Frame, error)
	Prev(ctx context.Context) (model.Frame, error)
	Subscribe() (frames <-chan model.Frame, cancel func())
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	Session Session
	Logger  log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "http.Server"})

	return nil
}

// Server is the HTTP front end of a visualisation session.
type Server struct {
	router  chi.Router
	session Session
	logger  log.Logger
}

// New creates a new Server with all routes registered.
func New(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		session: cfg.Session,
		logger:  cfg.Logger,
	}
	s.routes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))

	// UI.
	r.Get("/", s.handleIndex)
	r.Get("/frame.svg", s.handleFrameSVG)

	// API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Put("/step", s.handleSetStep)
		r.Post("/step/next", s.handleNextStep)
		r.Post("/step/prev", s.handlePrevStep)
		r.Get("/events", s.handleEvents)
	})
}
