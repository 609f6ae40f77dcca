// ABOUTME: MCP server initialization and configuration for postboard.
// ABOUTME: Wraps a single post list store and exposes it as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/posts"
)

// Server wraps the MCP server with a post list store. The store is not safe
// for concurrent use, so every handler holds mu while touching it.
type Server struct {
	mcp    *gomcp.Server
	mu     sync.Mutex
	store  *posts.Store
	logger *slog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool call logging.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates an MCP server exposing store.
func NewServer(store *posts.Store, opts ...ServerOption) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("post store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "postboard",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerPostTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp: serving on stdio")
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

// withStore runs fn with exclusive access to the store.
func (s *Server) withStore(fn func(*posts.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}
