package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured failure reported by a provider. Code is opaque:
// it keeps whatever type the provider used (a number for Coze, usually a
// string for OpenAI).
type APIError struct {
	Code       any
	Msg        string
	RequestID  string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("provider error (code %v): %s", e.Code, e.Msg)
	}
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("provider returned status %d: %s", e.HTTPStatus, e.Msg)
	}
	return "provider error: " + e.Msg
}

// Error is the classified failure returned by Adapter.Send.
type Error struct {
	Code      any
	Message   string
	RequestID string
	SessionID string
	Err       error
}

func (e *Error) Error() string {
	if e.HasCode() {
		return fmt.Sprintf("bot call failed (code %v): %s", e.Code, e.Message)
	}
	return "bot call failed: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HasCode reports whether the failure carries a usable provider code.
// Missing, empty and zero codes do not count.
func (e *Error) HasCode() bool {
	switch c := e.Code.(type) {
	case nil:
		return false
	case string:
		return c != ""
	case int:
		return c != 0
	case int64:
		return c != 0
	case float64:
		return c != 0
	case json.Number:
		return c != "" && c != "0"
	default:
		return true
	}
}

// classify converts a provider failure into an *Error, pulling code, message
// and request id from an attached *APIError when there is one.
func classify(err error, sessionID string) *Error {
	out := &Error{SessionID: sessionID, Err: err}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		out.Code = apiErr.Code
		out.Message = apiErr.Msg
		out.RequestID = apiErr.RequestID
		if out.Message == "" {
			out.Message = http.StatusText(apiErr.HTTPStatus)
		}
	} else if err != nil {
		out.Message = err.Error()
	}
	if out.Message == "" {
		out.Message = "unknown error"
	}
	return out
}
