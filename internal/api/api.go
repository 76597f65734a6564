// Package api serves the simplification pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                 build info and status
//	POST /api/v1/simplify         simplify the graph JSON in the request body
//	GET  /api/v1/graphs/{name}    simplify a graph stored in the graphs directory
//
// The simplify endpoints accept these query parameters:
//
//	format    comma-separated extra artifacts: dot, svg, png
//	detailed  label every group with its members
//	refresh   ignore cached partitions
//
// Every response is a JSON envelope. Errors carry the machine-readable code
// from pkg/errors, and every response echoes its request ID in the
// X-Request-ID header.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

const (
	maxBodyBytes    = 32 << 20
	shutdownTimeout = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	// GraphsDir holds graphs served by GET /api/v1/graphs/{name}. Empty
	// disables the endpoint.
	GraphsDir string

	Logger *log.Logger
}

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner    *pipeline.Runner
	graphsDir string
	logger    *log.Logger
	router    chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		graphsDir: cfg.GraphsDir,
		logger:    logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, envelope{
			Error: &errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"},
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simplify", s.handleSimplify)
		r.Get("/graphs/{name}", s.handleGraph)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
