package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the MCP implementation name.
const ServerName = "keycalc"

// NewServer creates an MCP server with the calculator tools registered.
func NewServer(version string, m *Manager) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	NewHandlers(m).Register(s)
	return s
}

// ServeStdio runs the calculator tools over stdin and stdout until the
// input closes.
func ServeStdio(version string, m *Manager) error {
	return server.ServeStdio(NewServer(version, m))
}
