package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EchoInput is the MCP tool input for echo.
type EchoInput struct {
	Message string `json:"message" jsonschema:"text to echo back"`
}

// EchoResult is the MCP tool output for echo.
type EchoResult struct {
	Message string `json:"message" jsonschema:"the echoed text"`
}

// TimeInput is the MCP tool input for time. The tool takes no arguments.
type TimeInput struct{}

// TimeResult is the MCP tool output for time.
type TimeResult struct {
	Time string `json:"time" jsonschema:"current server time in RFC 3339 format"`
}

// AckInput is the MCP tool input for ack. The tool takes no arguments.
type AckInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"optional correlation id echoed back"`
}

// AckResult is the MCP tool output for ack.
type AckResult struct {
	Status    string `json:"status" jsonschema:"static acknowledgment"`
	RequestID string `json:"request_id,omitempty" jsonschema:"correlation id if one was supplied"`
}

// EchoTool defines the MCP tool schema for echo.
func EchoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "echo",
		Description: "Echoes the supplied message back to the caller",
	}
}

// TimeTool defines the MCP tool schema for time.
func TimeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "time",
		Description: "Returns the current server time in RFC 3339 format",
	}
}

// AckTool defines the MCP tool schema for ack.
func AckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ack",
		Description: "Returns a static acknowledgment",
	}
}

// EchoHandler returns the handler for the echo tool.
func EchoHandler() mcp.ToolHandlerFor[EchoInput, EchoResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EchoInput) (*mcp.CallToolResult, EchoResult, error) {
		return nil, EchoResult{Message: input.Message}, nil
	}
}

// TimeHandler returns the handler for the time tool. The clock is injectable
// so tests can pin the instant.
func TimeHandler(now func() time.Time) mcp.ToolHandlerFor[TimeInput, TimeResult] {
	if now == nil {
		now = time.Now
	}
	return func(_ context.Context, _ *mcp.CallToolRequest, _ TimeInput) (*mcp.CallToolResult, TimeResult, error) {
		return nil, TimeResult{Time: now().UTC().Format(time.RFC3339)}, nil
	}
}

// AckHandler returns the handler for the ack tool.
func AckHandler() mcp.ToolHandlerFor[AckInput, AckResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AckInput) (*mcp.CallToolResult, AckResult, error) {
		return nil, AckResult{Status: "ok", RequestID: input.RequestID}, nil
	}
}
