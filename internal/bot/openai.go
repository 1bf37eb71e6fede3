package bot

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider on top of any OpenAI-compatible Chat
// Completions endpoint. A completion finishes in one round trip, so there is
// nothing to poll.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. An empty baseURL uses the
// public OpenAI API.
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) CreateAndPoll(ctx context.Context, q Question) (*RawResponse, error) {
	var messages []openai.ChatCompletionMessage
	for _, msg := range q.AdditionalMessages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
		User:     q.UserID,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			code := apiErr.Code
			if code == nil {
				code = apiErr.HTTPStatusCode
			}
			return nil, &APIError{
				Code:       code,
				Msg:        apiErr.Message,
				HTTPStatus: apiErr.HTTPStatusCode,
			}
		}
		return nil, err
	}

	out := &RawResponse{}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	return out, nil
}
