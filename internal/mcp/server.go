package mcp

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/httpapi"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// Server serves the JSON API and the MCP streamable transport from one listener
type Server struct {
	logger *logging.Logger
	config config.Config

	srv     *http.Server
	started atomic.Bool
}

// NewServer builds the HTTP server. session, when non-nil, resolves the
// signed-in user for the saved-jobs endpoints.
func NewServer(log *logging.Logger, cfg config.Config, res *Resources, session func(http.Handler) http.Handler) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "sarkarijobs",
		Version: "0.1.0",
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	NewToolRegistry(log.Named("mcp")).RegisterAll(mcpServer, res)

	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	api := httpapi.NewHandler(res.JobService, res.Normalizer, log.Named("http"))

	r := chi.NewRouter()
	r.Mount("/api", httpapi.Routes(api, session))
	r.Handle("/mcp/stream", handler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		config: cfg,
		srv:    httpSrv,
	}
}

// Handler exposes the root router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// Bootstrap wires resources for cmd/server, falling back to the in-memory
// saved-jobs store when the configured backend cannot be reached.
func Bootstrap(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, error) {
	return initializeResources(ctx, cfg, log)
}
