// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies server requires a store and applies options.
package mcp

import (
	"log/slog"
	"testing"

	"github.com/2389-research/postboard/internal/posts"
)

func TestNewServerRequiresStore(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error when store is nil")
	}
}

func TestNewServerSuccess(t *testing.T) {
	server, err := NewServer(posts.New(nil))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server == nil {
		t.Error("expected non-nil server")
	}
}

func TestNewServerWithLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	server, err := NewServer(posts.New(nil), WithLogger(logger))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server.logger != logger {
		t.Error("expected logger to be set")
	}
}
