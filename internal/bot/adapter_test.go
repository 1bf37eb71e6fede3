package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// MockProvider is a test provider that records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []Question
	Response *RawResponse
	Err      error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{Response: &RawResponse{Content: "mock response"}}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) CreateAndPoll(_ context.Context, q Question) (*RawResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, q)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendBuildsQuestion(t *testing.T) {
	mock := NewMockProvider()
	a := NewAdapter(mock, "bot-123",
		WithLogger(quietLogger()),
		WithIDGenerator(func() string { return "session-1" }),
	)

	res, err := a.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "mock response" || res.Shape != ShapeContent || res.SessionID != "session-1" {
		t.Errorf("unexpected result: %+v", res)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	q := mock.Calls[0]
	if q.BotID != "bot-123" || q.UserID != "session-1" {
		t.Errorf("unexpected ids: bot=%q user=%q", q.BotID, q.UserID)
	}
	if len(q.AdditionalMessages) != 1 {
		t.Fatalf("expected 1 additional message, got %d", len(q.AdditionalMessages))
	}
	msg := q.AdditionalMessages[0]
	want := EnvelopeMessage{Content: "hello", Role: "user", ContentType: "text", Type: "question"}
	if msg != want {
		t.Errorf("envelope message = %+v, want %+v", msg, want)
	}
	if q.Stream {
		t.Error("question must not request streaming")
	}
}

func TestSendMessageUsesFreshSessionPerCall(t *testing.T) {
	mock := NewMockProvider()
	a := NewAdapter(mock, "bot", WithLogger(quietLogger()))

	for i := 0; i < 2; i++ {
		if _, err := a.SendMessage(context.Background(), "same message"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 provider calls, got %d", mock.CallCount())
	}
	if mock.Calls[0].UserID == "" || mock.Calls[0].UserID == mock.Calls[1].UserID {
		t.Errorf("expected two distinct session ids, got %q and %q", mock.Calls[0].UserID, mock.Calls[1].UserID)
	}
}

func TestSendClassifiesAPIError(t *testing.T) {
	mock := NewMockProvider()
	mock.Err = &APIError{Code: 4001, Msg: "bad token", RequestID: "abc", HTTPStatus: 401}
	a := NewAdapter(mock, "bot", WithLogger(quietLogger()), WithIDGenerator(func() string { return "s" }))

	_, err := a.SendMessage(context.Background(), "hi")

	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !berr.HasCode() || berr.Code != 4001 {
		t.Errorf("code = %v, want 4001", berr.Code)
	}
	if berr.Message != "bad token" || berr.RequestID != "abc" || berr.SessionID != "s" {
		t.Errorf("unexpected classification: %+v", berr)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Error("original *APIError should stay reachable through Unwrap")
	}
}

func TestSendClassifiesUnstructuredError(t *testing.T) {
	mock := NewMockProvider()
	mock.Err = errors.New("dial tcp: connection refused")
	a := NewAdapter(mock, "bot", WithLogger(quietLogger()))

	_, err := a.SendMessage(context.Background(), "hi")

	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if berr.HasCode() {
		t.Errorf("unstructured failure must not carry a code, got %v", berr.Code)
	}
	if berr.Message != "dial tcp: connection refused" {
		t.Errorf("message = %q", berr.Message)
	}
}

func TestSendReturnsLastErrorAsReply(t *testing.T) {
	mock := NewMockProvider()
	mock.Response = &RawResponse{Chat: &Chat{Status: ChatStatusFailed, LastError: &LastError{Code: 5000, Msg: "boom"}}}
	a := NewAdapter(mock, "bot", WithLogger(quietLogger()))

	got, err := a.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("last_error must not be a failure: %v", err)
	}
	if got != "boom" {
		t.Errorf("reply = %q, want %q", got, "boom")
	}
}

func TestErrorHasCode(t *testing.T) {
	tests := []struct {
		code any
		want bool
	}{
		{nil, false},
		{"", false},
		{0, false},
		{int64(0), false},
		{float64(0), false},
		{4001, true},
		{float64(4001), true},
		{"invalid_api_key", true},
	}
	for _, tt := range tests {
		e := &Error{Code: tt.code}
		if got := e.HasCode(); got != tt.want {
			t.Errorf("HasCode(%#v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestClassifyFallbackMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api error without message", &APIError{Code: 4001}, "unknown error"},
		{"api error uses status text", &APIError{Code: 4001, HTTPStatus: 401}, "Unauthorized"},
		{"wrapped api error", fmt.Errorf("calling: %w", &APIError{Code: 7, HTTPStatus: 502}), "Bad Gateway"},
		{"plain error", errors.New("connection reset"), "connection reset"},
		{"nil error", nil, "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err, "s").Message; got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
