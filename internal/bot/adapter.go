package bot

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Provider is a remote conversational-AI backend. CreateAndPoll sends one
// question and blocks until the provider's chat has finished or failed.
type Provider interface {
	CreateAndPoll(ctx context.Context, q Question) (*RawResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// Result is a successful relay.
type Result struct {
	SessionID string
	Text      string
	Shape     Shape
}

// Adapter relays single messages to a Provider. Every call uses a fresh
// session identifier, so no state is shared between calls.
type Adapter struct {
	provider Provider
	botID    string
	newID    func() string
	logger   *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for provider diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithIDGenerator replaces the session identifier generator.
func WithIDGenerator(f func() string) Option {
	return func(a *Adapter) {
		if f != nil {
			a.newID = f
		}
	}
}

// NewAdapter creates an Adapter for the given provider and bot id.
func NewAdapter(provider Provider, botID string, opts ...Option) *Adapter {
	a := &Adapter{
		provider: provider,
		botID:    botID,
		newID:    uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProviderName returns the name of the underlying provider.
func (a *Adapter) ProviderName() string { return a.provider.Name() }

// SendMessage relays text and returns the bot's normalized reply.
func (a *Adapter) SendMessage(ctx context.Context, text string) (string, error) {
	res, err := a.Send(ctx, text)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Send relays text and returns the reply along with the session identifier
// and the response shape it was taken from. Failures are always *Error.
func (a *Adapter) Send(ctx context.Context, text string) (*Result, error) {
	sessionID := a.newID()
	q := NewQuestion(a.botID, sessionID, text)

	resp, err := a.provider.CreateAndPoll(ctx, q)
	if err != nil {
		cerr := classify(err, sessionID)
		a.logger.Error("provider call failed",
			"provider", a.provider.Name(),
			"error", err,
			"bot_id", a.botID,
			"session_id", sessionID,
			"message", text,
			"code", cerr.Code,
			"provider_msg", cerr.Message,
			"request_id", cerr.RequestID,
		)
		return nil, cerr
	}

	reply := Classify(resp)
	a.logger.Debug("provider response",
		"provider", a.provider.Name(),
		"session_id", sessionID,
		"shape", reply.Shape(),
		"response", resp,
	)

	return &Result{
		SessionID: sessionID,
		Text:      reply.Text(),
		Shape:     reply.Shape(),
	}, nil
}
