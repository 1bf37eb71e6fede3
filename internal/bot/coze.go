package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	cozeChatPath        = "/v3/chat"
	cozeRetrievePath    = "/v3/chat/retrieve"
	cozeMessageListPath = "/v3/chat/message/list"
)

// CozeProvider implements Provider against the Coze v3 chat API via direct
// HTTP: create the chat, poll it until it finishes, then list its messages.
type CozeProvider struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	client       *http.Client
}

// NewCozeProvider creates a new Coze provider.
func NewCozeProvider(baseURL, token string, pollInterval time.Duration) *CozeProvider {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &CozeProvider{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		pollInterval: pollInterval,
		client:       &http.Client{},
	}
}

func (p *CozeProvider) Name() string {
	return "coze"
}

// cozeEnvelope wraps every Coze API response.
type cozeEnvelope struct {
	Code      int             `json:"code"`
	Msg       string          `json:"msg"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id,omitempty"`
	Detail    struct {
		LogID string `json:"logid"`
	} `json:"detail"`
}

func (p *CozeProvider) CreateAndPoll(ctx context.Context, q Question) (*RawResponse, error) {
	var chat Chat
	if err := p.do(ctx, http.MethodPost, cozeChatPath, nil, q, &chat); err != nil {
		return nil, err
	}
	if chat.ID == "" || chat.ConversationID == "" {
		return nil, errors.New("coze created a chat without chat or conversation id")
	}

	for !chatFinished(chat.Status) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.pollInterval):
		}

		var next Chat
		params := url.Values{
			"conversation_id": {chat.ConversationID},
			"chat_id":         {chat.ID},
		}
		if err := p.do(ctx, http.MethodGet, cozeRetrievePath, params, nil, &next); err != nil {
			return nil, err
		}
		if next.Status == "" {
			return nil, fmt.Errorf("coze returned no status for chat %s", chat.ID)
		}
		if next.ID == "" {
			next.ID = chat.ID
		}
		if next.ConversationID == "" {
			next.ConversationID = chat.ConversationID
		}
		chat = next
	}

	resp := &RawResponse{Chat: &chat}
	if chat.Status != ChatStatusCompleted {
		return resp, nil
	}

	params := url.Values{
		"conversation_id": {chat.ConversationID},
		"chat_id":         {chat.ID},
	}
	if err := p.do(ctx, http.MethodGet, cozeMessageListPath, params, nil, &resp.Messages); err != nil {
		return nil, err
	}
	return resp, nil
}

func chatFinished(status string) bool {
	switch status {
	case ChatStatusCompleted, ChatStatusFailed, ChatStatusRequiresAction, ChatStatusCanceled:
		return true
	}
	return false
}

// do performs one API call and decodes the envelope's data into out.
func (p *CozeProvider) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := p.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal coze request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("coze request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read coze response: %w", err)
	}
	logID := httpResp.Header.Get("X-Tt-Logid")
	ok := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300

	var env cozeEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if !ok {
			return &APIError{
				Msg:        strings.TrimSpace(string(respBody)),
				RequestID:  logID,
				HTTPStatus: httpResp.StatusCode,
			}
		}
		return fmt.Errorf("failed to unmarshal coze response: %w", err)
	}

	requestID := firstNonEmpty(env.RequestID, env.Detail.LogID, logID)
	if env.Code != 0 {
		return &APIError{
			Code:       env.Code,
			Msg:        env.Msg,
			RequestID:  requestID,
			HTTPStatus: httpResp.StatusCode,
		}
	}
	if !ok {
		msg := env.Msg
		if msg == "" {
			msg = http.StatusText(httpResp.StatusCode)
		}
		return &APIError{Msg: msg, RequestID: requestID, HTTPStatus: httpResp.StatusCode}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal coze %s data: %w", path, err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
