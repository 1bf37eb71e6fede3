package audit

import "time"

// Outcome classifies how a chat exchange ended.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeProviderError   Outcome = "provider_error"
	OutcomeUnknownError    Outcome = "unknown_error"
)

// Exchange is the record of a single relayed chat message. Only metadata
// is kept; message and reply text are never stored.
type Exchange struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	Outcome      Outcome   `json:"outcome"`
	HTTPStatus   int       `json:"http_status"`
	Shape        string    `json:"shape,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	LatencyMS    int64     `json:"latency_ms"`
	MessageChars int       `json:"message_chars"`
	ReplyChars   int       `json:"reply_chars"`
}
