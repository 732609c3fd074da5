// Package mcpserver hosts the tool-invocation layer behind the gateway's
// bearer gate: an MCP server over the streamable HTTP transport with three
// stub tools (echo, time, ack). Session state lives inside the handler
// instance, so each gateway instance owns exactly its own registry.
package mcpserver

import (
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "mcpgate"
	serverVersion = "0.1.0"
)

// NewServer creates the MCP server and registers the stub tools.
func NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, EchoTool(), EchoHandler())
	mcp.AddTool(server, TimeTool(), TimeHandler(time.Now))
	mcp.AddTool(server, AckTool(), AckHandler())

	return server
}

// NewHandler wraps the MCP server in the streamable HTTP transport handler.
// The handler keeps its own per-session connection registry; callers mount it
// behind the token-validating middleware.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
