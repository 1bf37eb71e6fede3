package mcp

import "github.com/mark3labs/mcp-go/mcp"

// sendMessageTool defines the send_message MCP tool.
var sendMessageTool = mcp.NewTool("send_message",
	mcp.WithDescription("Send a message to the configured chat bot and return its reply. Every call starts a fresh conversation."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The text to send to the bot"),
	),
)
