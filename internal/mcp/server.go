package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/botrelay/internal/gateway"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the bot as a tool.
type Server struct {
	sender gateway.Sender
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server relaying through sender.
func NewServer(sender gateway.Sender) *Server {
	s := &Server{sender: sender}

	s.mcp = server.NewMCPServer(
		"botrelay",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(sendMessageTool, s.handleSendMessage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
