package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/botrelay/internal/audit"
	"github.com/ziadkadry99/botrelay/internal/bot"
)

// User-facing texts of the error taxonomy.
const (
	MsgEmptyMessage = "Please enter a message."
	MsgUnknownError = "Sorry, the server encountered an unknown error. Please try again later."
)

// DefaultTimeout bounds a single relay when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Sender relays one message to the bot.
type Sender interface {
	Send(ctx context.Context, text string) (*bot.Result, error)
	ProviderName() string
}

// Recorder stores one record per handled chat request.
type Recorder interface {
	Record(ctx context.Context, ex audit.Exchange) error
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body of every /chat reply, successful or not.
type ChatResponse struct {
	Response  string `json:"response"`
	ErrorCode any    `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Gateway exposes a Sender over HTTP.
type Gateway struct {
	sender         Sender
	recorder       Recorder
	logger         *slog.Logger
	timeout        time.Duration
	allowedOrigins []string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithRecorder records every exchange with rec.
func WithRecorder(rec Recorder) Option {
	return func(g *Gateway) { g.recorder = rec }
}

// WithLogger sets the gateway logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTimeout bounds each relay. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithAllowedOrigins restricts which browser origins may open /ws/chat.
func WithAllowedOrigins(origins ...string) Option {
	return func(g *Gateway) { g.allowedOrigins = origins }
}

// New creates a Gateway relaying through sender.
func New(sender Sender, opts ...Option) *Gateway {
	g := &Gateway{
		sender:  sender,
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterRoutes mounts the chat endpoints onto the given router.
func (g *Gateway) RegisterRoutes(r chi.Router) {
	r.Post("/chat", g.handleChat)
	r.Get("/ws/chat", g.handleWebSocket)
}

// HandleChat validates req, relays it and maps the outcome onto an HTTP
// status and response body. It never returns an error: every failure is
// folded into the payload.
func (g *Gateway) HandleChat(ctx context.Context, req ChatRequest) (int, ChatResponse) {
	start := time.Now()
	ex := audit.Exchange{
		Timestamp:    start,
		Provider:     g.sender.ProviderName(),
		MessageChars: utf8.RuneCountInString(req.Message),
	}

	if req.Message == "" {
		ex.Outcome = audit.OutcomeValidationError
		ex.HTTPStatus = 400
		g.record(ctx, ex)
		return 400, ChatResponse{Response: MsgEmptyMessage}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.sender.Send(ctx, req.Message)
	ex.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		status, payload := ErrorResponse(err)

		var berr *bot.Error
		if errors.As(err, &berr) {
			ex.SessionID = berr.SessionID
			ex.RequestID = berr.RequestID
		}
		ex.HTTPStatus = status
		if payload.ErrorCode != nil {
			ex.Outcome = audit.OutcomeProviderError
			ex.ErrorCode = fmt.Sprint(payload.ErrorCode)
		} else {
			ex.Outcome = audit.OutcomeUnknownError
		}
		g.record(ctx, ex)
		return status, payload
	}

	ex.SessionID = res.SessionID
	ex.Outcome = audit.OutcomeOK
	ex.HTTPStatus = 200
	ex.Shape = string(res.Shape)
	ex.ReplyChars = utf8.RuneCountInString(res.Text)
	g.record(ctx, ex)

	g.logger.Info("chat relayed",
		"session_id", res.SessionID,
		"shape", res.Shape,
		"latency_ms", ex.LatencyMS,
	)
	return 200, ChatResponse{Response: res.Text}
}

// ErrorResponse maps a relay failure onto the error taxonomy: failures with
// a provider code are reported with that code, everything else gets a
// generic apology.
func ErrorResponse(err error) (int, ChatResponse) {
	var berr *bot.Error
	if errors.As(err, &berr) && berr.HasCode() {
		return 500, ChatResponse{
			Response:  fmt.Sprintf("API error (%v): %s", berr.Code, berr.Message),
			ErrorCode: berr.Code,
			RequestID: berr.RequestID,
		}
	}
	return 500, ChatResponse{Response: MsgUnknownError}
}

func (g *Gateway) record(ctx context.Context, ex audit.Exchange) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Record(context.WithoutCancel(ctx), ex); err != nil {
		g.logger.Warn("recording exchange failed", "error", err, "session_id", ex.SessionID)
	}
}
