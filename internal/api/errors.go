package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a transport/server failure with the most useful message the
// response offered: the body's "message" field when present, then its
// "error" field, then a generic fallback. Mutation callers show Message to
// the operator verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// Body may be empty or not JSON at all; the fallback covers both.
	_ = json.Unmarshal(body, &payload)

	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = strings.TrimSpace(payload.Error)
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed (HTTP %d)", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
