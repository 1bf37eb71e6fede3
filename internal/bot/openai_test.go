package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ziadkadry99/botrelay/internal/config"
)

func TestOpenAIProviderCompletion(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		User     string `json:"user"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"Hi from OpenAI"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL+"/v1", "gpt-4o-mini")
	resp, err := p.CreateAndPoll(context.Background(), NewQuestion("", "session-9", "hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Classify(resp).Shape() != ShapeContent || resp.Content != "Hi from OpenAI" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got.Model != "gpt-4o-mini" || got.User != "session-9" {
		t.Errorf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestOpenAIProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("bad", srv.URL+"/v1", "gpt-4o-mini")
	_, err := p.CreateAndPoll(context.Background(), NewQuestion("", "s", "hello"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "invalid_api_key" || apiErr.Msg != "Incorrect API key provided" {
		t.Errorf("unexpected api error: %+v", apiErr)
	}
	if apiErr.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("http status = %d", apiErr.HTTPStatus)
	}
}

func TestNewProviderFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CozeToken = "t"
	cfg.CozeBotID = "b"

	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "coze" {
		t.Errorf("expected coze provider, got %q", p.Name())
	}

	cfg.Provider = config.ProviderOpenAI
	cfg.OpenAIAPIKey = "sk"
	p, err = NewProvider(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected openai provider, got %q", p.Name())
	}

	cfg.Provider = "unknown"
	if _, err := NewProvider(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}
