package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/internal/config"
	"github.com/jrsteele09/go-care-portal/routing"
	"github.com/jrsteele09/go-care-portal/token"
	"github.com/jrsteele09/go-care-portal/users"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string // Environment ("DEV", "PROD")
	mux      *http.ServeMux
	handler  http.HandlerFunc
	routes   []string
	config   config.Config
	table    *routing.Table
	sessions *auth.Sessions
	service  *auth.Service
	pipeline *Pipeline
	metrics  *Metrics
	pages    *pageRenderer

	serviceOpts []auth.ServiceOption
}

type Option func(*Server)

// WithServiceOptions configures the account service, mainly for tests.
func WithServiceOptions(opts ...auth.ServiceOption) Option {
	return func(s *Server) {
		s.serviceOpts = append(s.serviceOpts, opts...)
	}
}

func New(cfg config.Config, userRepo users.UserRepo, opts ...Option) (*Server, error) {
	table, err := routing.Load()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load route table: %w", err)
	}
	pages, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	keyring := token.NewKeyring(cfg)
	sessionStore := auth.NewSessions(keyring, cfg.GetSecureCookies())
	gate := auth.NewGate(sessionStore, table, auth.WithActivationAllowed(cfg.GetActivationAllowsSession()))

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		table:    table,
		sessions: sessionStore,
		metrics:  NewMetrics(),
		pages:    pages,
	}
	s.pipeline = NewPipeline(gate, table, WithObserver(s.observePipeline))
	for _, opt := range opts {
		opt(s)
	}
	s.service = auth.NewService(userRepo, s.serviceOpts...)

	if err := s.InitialiseSystem(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	// The pipeline wraps the mux so that it sees every request before the
	// mux cleans or redirects the path.
	s.handler = ChainMiddleware(s.mux.ServeHTTP,
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.FrameSecurityMiddleware,
		s.pipeline.Middleware,
	)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

// Table returns the route table the server was built with.
func (s *Server) Table() *routing.Table {
	return s.table
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) observePipeline(res Result) {
	s.metrics.ObservePipeline(res)
	if res.Kind != Redirect {
		return
	}
	log.Debug().
		Int("status", res.Status).
		Str("location", res.Location).
		Str("reason", string(res.Decision.Reason)).
		Str("app", res.Decision.App.String()).
		Msg("Pipeline redirect")
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colourMethod(method), path)
}
