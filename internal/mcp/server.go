// Package mcp exposes the inventory pipeline as MCP tools over stdio so
// AI agents can drive the stockroom directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"labstock/internal/catalog"
	"labstock/internal/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes inventory tools.
type Server struct {
	engine *engine.Engine
	store  catalog.Store
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(eng *engine.Engine, store catalog.Store) *Server {
	s := &Server{
		engine: eng,
		store:  store,
	}

	s.mcp = server.NewMCPServer(
		"labstock",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(inventoryCommandTool, s.handleInventoryCommand)
	s.mcp.AddTool(listItemsTool, s.handleListItems)
	s.mcp.AddTool(undoLastTool, s.handleUndoLast)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
