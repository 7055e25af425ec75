// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/secureblog/internal/auth"
	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/config"
	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/platform/csrf"
	"github.com/taibuivan/secureblog/internal/platform/metrics"
	"github.com/taibuivan/secureblog/internal/platform/middleware"
	"github.com/taibuivan/secureblog/internal/platform/respond"
	"github.com/taibuivan/secureblog/internal/post"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the route handlers and the request guards they run behind.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when every dependency answers.
	Readiness http.HandlerFunc

	// Auth handles registration, login, logout and the user list.
	Auth *auth.Handler

	// Post handles the owner-scoped post resource.
	Post *post.Handler

	// CSRF issues and checks anti-forgery tokens.
	CSRF *csrf.Guard

	// Verifier checks bearer tokens.
	Verifier middleware.TokenVerifier

	// Limiter throttles clients per IP. Its janitor is run by the caller.
	Limiter *middleware.RateLimiter

	// Metrics records request and rejection counters. May be nil.
	Metrics *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if h.Metrics != nil {
		r.Use(h.Metrics.Instrument)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	if h.Limiter != nil {
		r.Use(h.Limiter.Middleware)
	}
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.MethodNotAllowed())
	})

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	// # Application API
	protect := h.CSRF.Protect
	var recorder middleware.RejectionRecorder
	if h.Metrics != nil {
		recorder = h.Metrics
	}
	authenticate := middleware.Authenticate(h.Verifier, recorder)

	r.Get("/csrf-token", h.CSRF.TokenHandler)
	r.Mount("/posts", h.Post.Routes(protect, authenticate))
	r.Mount("/", h.Auth.Routes(protect, authenticate))

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
