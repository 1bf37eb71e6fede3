package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/botrelay/internal/gateway"
)

// handleSendMessage relays one message and returns the normalized reply.
// Failures are reported as tool errors worded like the HTTP responses.
func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := request.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError(gateway.MsgEmptyMessage), nil
	}

	res, err := s.sender.Send(ctx, message)
	if err != nil {
		_, payload := gateway.ErrorResponse(err)
		return mcp.NewToolResultError(payload.Response), nil
	}

	return mcp.NewToolResultText(res.Text), nil
}
