// Package mcpserver exposes raggrep's index/search/cleanup operations as
// an MCP (Model Context Protocol) server over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/raggrep/raggrep/internal/config"
	"github.com/raggrep/raggrep/internal/orchestrator"
	"github.com/raggrep/raggrep/internal/session"
)

// Server owns the project session (config, store, hash cache, one
// orchestrator.Engine per enabled module) and serves three tools
// (raggrep_search, raggrep_index, raggrep_cleanup) over stdio.
type Server struct {
	rootDir string
	config  *config.Config
	engines map[string]*orchestrator.Engine

	proj *session.Project
	mcp  *server.MCPServer
}

// New opens the project session rooted at rootDir and registers the MCP
// tools over it.
func New(rootDir string) (*Server, error) {
	proj, err := session.Open(rootDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		rootDir: rootDir, config: proj.Config, engines: proj.Engines, proj: proj,
	}

	mcpServer := server.NewMCPServer(
		"raggrep-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddSearchTool(mcpServer, s)
	AddIndexTool(mcpServer, s)
	AddCleanupTool(mcpServer, s)
	s.mcp = mcpServer

	return s, nil
}

// Serve blocks until shutdown, on a SIGINT/SIGTERM or a stdio transport
// error.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.proj.Log.Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.proj.Log.Info("received shutdown signal, stopping gracefully")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the store and hash cache handles.
func (s *Server) Close() error {
	s.proj.Close()
	return nil
}
