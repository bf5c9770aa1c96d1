// Package server assembles the MCP protocol layer around the tool table
// and runs it over the configured transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weathermcp/weathermcp/internal/config"
	"github.com/weathermcp/weathermcp/internal/tools"
)

// Name and Version identify the server to MCP clients.
const (
	Name    = "WeatherMCP"
	Version = "1.1.0"
)

const instructions = "This is a WeatherXM server. You can get current weather, forecast, history, " +
	"air quality, astronomy, station and timezone information by calling the available tools."

// Options bundles the server dependencies.
type Options struct {
	Config config.Config
	Client tools.Fetcher
	Logger *slog.Logger
}

// Server hosts the MCP tool surface over stdio or SSE.
type Server struct {
	cfg    config.Config
	mcp    *mcpserver.MCPServer
	logger *slog.Logger
}

// New constructs the MCP server and registers the full tool table.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpserver.NewMCPServer(Name, Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(instructions),
	)
	tools.Register(s, opts.Client)

	return &Server{cfg: opts.Config, mcp: s, logger: logger}
}

// Run serves the configured transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case "", config.TransportStdio:
		return s.runStdio(ctx)
	case config.TransportSSE:
		return s.runSSE(ctx)
	default:
		return fmt.Errorf("unknown transport %q", s.cfg.Server.Transport)
	}
}

// runStdio speaks MCP over stdin/stdout. Diagnostics must go to stderr:
// stdout carries the protocol stream.
func (s *Server) runStdio(ctx context.Context) error {
	s.logger.Info("serving mcp over stdio")
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) runSSE(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Server.Address,
		Handler:     s.sseHandler(),
		ReadTimeout: s.cfg.Server.ReadTimeout,
		IdleTimeout: s.cfg.Server.IdleTimeout,
		// No write timeout: the SSE stream stays open.
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving mcp over sse", "addr", s.cfg.Server.Address)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// sseHandler mounts the SSE transport next to health and metrics
// endpoints.
func (s *Server) sseHandler() http.Handler {
	sse := mcpserver.NewSSEServer(s.mcp)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "server": Name, "version": Version})
	})
	if s.cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.GET("/sse", gin.WrapH(sse.SSEHandler()))
	r.POST("/message", gin.WrapH(sse.MessageHandler()))

	return r
}
