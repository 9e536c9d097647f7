// Package server provides the MCP server wrapper with lifecycle management.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/config"
	"github.com/medmcp/medmcp-go/internal/metrics"
)

// Server wraps the MCP server with dependencies and lifecycle management.
type Server struct {
	mcp       *mcp.Server
	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
}

// New creates a new MCP server with the given version and logger.
func New(version string, cfg *config.Config, logger *slog.Logger, collector *metrics.Collector) *Server {
	impl := &mcp.Implementation{
		Name:    "medmcp",
		Version: version,
	}

	mcpServer := mcp.NewServer(impl, nil)

	return &Server{
		mcp:       mcpServer,
		cfg:       cfg,
		logger:    logger,
		collector: collector,
	}
}

// MCPServer returns the underlying MCP server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Setup adds middleware to the server (logging, metrics).
func (s *Server) Setup() {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger, s.collector))
}

// Run serves the MCP streamable-HTTP transport on the configured address
// and blocks until the context is cancelled. The /mcp endpoint sits behind
// the bearer-token gate; /health is unauthenticated.
func (s *Server) Run(ctx context.Context) error {
	streamHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", s.requireBearer(streamHandler))
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // long enough for the scholar delay plus a slow upstream
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server", "transport", "streamable-http", "addr", s.cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// handleHealth reports liveness and uptime. No auth: load balancers and
// probes call this without credentials.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":         "ok",
		"uptime_seconds": s.collector.Snapshot().UptimeSeconds,
	})
}
