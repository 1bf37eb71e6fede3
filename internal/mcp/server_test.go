package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/botrelay/internal/bot"
	"github.com/ziadkadry99/botrelay/internal/gateway"
)

// mockSender implements gateway.Sender for testing.
type mockSender struct {
	reply string
	err   error
	calls []string
}

func (m *mockSender) Send(_ context.Context, text string) (*bot.Result, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	return &bot.Result{SessionID: "s", Text: m.reply, Shape: bot.ShapeContent}, nil
}

func (m *mockSender) ProviderName() string { return "mock" }

func callSendMessage(t *testing.T, srv *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := srv.handleSendMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinition(t *testing.T) {
	if sendMessageTool.Name != "send_message" {
		t.Errorf("tool name = %q", sendMessageTool.Name)
	}
	if sendMessageTool.Description == "" {
		t.Error("tool description should not be empty")
	}
	required := sendMessageTool.InputSchema.Required
	if len(required) != 1 || required[0] != "message" {
		t.Errorf("required = %v, want [message]", required)
	}
}

func TestNewServer(t *testing.T) {
	sender := &mockSender{}
	srv := NewServer(sender)

	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.sender != sender {
		t.Error("sender not set correctly")
	}
}

func TestHandleSendMessage(t *testing.T) {
	t.Run("reply", func(t *testing.T) {
		sender := &mockSender{reply: "hello back"}
		result := callSendMessage(t, NewServer(sender), map[string]any{"message": "hello"})

		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if got := resultText(t, result); got != "hello back" {
			t.Errorf("text = %q", got)
		}
		if len(sender.calls) != 1 || sender.calls[0] != "hello" {
			t.Errorf("calls = %v", sender.calls)
		}
	})

	t.Run("missing message", func(t *testing.T) {
		sender := &mockSender{}
		result := callSendMessage(t, NewServer(sender), map[string]any{})

		if !result.IsError {
			t.Error("expected tool error for missing message")
		}
		if got := resultText(t, result); got != gateway.MsgEmptyMessage {
			t.Errorf("text = %q", got)
		}
		if len(sender.calls) != 0 {
			t.Error("sender must not be called without a message")
		}
	})

	t.Run("provider error", func(t *testing.T) {
		sender := &mockSender{err: &bot.Error{Code: 4001, Message: "bad token", RequestID: "abc"}}
		result := callSendMessage(t, NewServer(sender), map[string]any{"message": "hi"})

		if !result.IsError {
			t.Fatal("expected tool error")
		}
		if got := resultText(t, result); got != "API error (4001): bad token" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("unknown error", func(t *testing.T) {
		sender := &mockSender{err: errors.New("dial tcp: refused")}
		result := callSendMessage(t, NewServer(sender), map[string]any{"message": "hi"})

		if !result.IsError {
			t.Fatal("expected tool error")
		}
		if got := resultText(t, result); got != gateway.MsgUnknownError {
			t.Errorf("text = %q", got)
		}
	})
}
