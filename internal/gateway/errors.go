// Package gateway is the single point through which the storefront talks to
// the commerce backend. It owns the in-memory mirror of the bearer credential
// and runs a fixed interceptor stage over every response, so an observed 401
// always clears the credential before the caller sees the failure.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSessionExpired is returned by resource operations that received a 401.
// It is derived locally from the status code, not a backend-labelled error;
// by the time a caller observes it the credential has already been cleared.
var ErrSessionExpired = errors.New("session expired")

// AuthenticationError reports a login or registration rejected by the
// backend, carrying the backend's status and message.
type AuthenticationError struct {
	Status  int
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.Status, e.Message)
}

// ValidationError reports malformed input, either detected locally before any
// network call (Fields lists what is missing) or reported by the backend as a
// 4xx on registration (e.g. duplicate email).
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	}
	return e.Message
}

// ClientRequestError is any backend 4xx outside the auth flow, with the raw
// response body preserved for the caller.
type ClientRequestError struct {
	Status int
	Body   string
}

func (e *ClientRequestError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Body)
}

// ServerError is a backend 5xx. The caller decides whether to retry; the
// gateway never retries on its own.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend server error (%d)", e.Status)
}

// TransportError wraps a network failure, timeout, or an unparseable
// response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// errorMessage pulls a human-readable message out of a backend error body.
// The backend is not consistent about the envelope key.
func errorMessage(body []byte) string {
	var envelope struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, msg := range []string{envelope.Detail, envelope.Error, envelope.Message} {
			if msg != "" {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(body))
}
