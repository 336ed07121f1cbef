// Package mcpserver exposes the version catalog and prompt diffs as MCP
// tools, so agents can query "what changed between these releases"
// without scraping the TUI.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/promptdiff/internal/catalog"
	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/store"
)

// Server manages an MCP server exposing catalog and diff tools. It can
// serve over stdio (the `mcp` subcommand) or an embedded HTTP endpoint.
type Server struct {
	client     *catalog.Client
	store      *store.Store // nil disables the history tool's backing log
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	port       int
	mu         sync.Mutex
}

// New creates a new MCP server instance. The store may be nil; the
// history tool then reports that no event log is available.
func New(client *catalog.Client, st *store.Store) *Server {
	s := &Server{
		client: client,
		store:  st,
	}
	s.mcpServer = server.NewMCPServer(
		"promptdiff-tools",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP over stdin/stdout and blocks until the client
// disconnects.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("mcp stdio server failed: %w", err)
	}
	return nil
}

// Start starts the MCP HTTP server on a random available port.
// Returns the port number or an error if startup fails.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	// Find a random available port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port
	if err := listener.Close(); err != nil {
		return 0, fmt.Errorf("failed to close listener: %w", err)
	}

	// Stateless mode, no session management needed
	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)

	logger.Debug("Starting MCP server on port %d", s.port)

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	httpServer := s.httpServer
	go func() {
		if err := httpServer.Start(addr); err != nil {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Debug("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the MCP HTTP server and cleans up resources.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil // Already stopped
	}

	logger.Debug("Stopping MCP server")
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP server endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
