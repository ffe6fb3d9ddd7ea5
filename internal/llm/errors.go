package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind categorizes provider failures so callers can map them to
// distinct outward signals.
type ErrorKind string

// Provider failure kinds.
const (
	ErrKindTimeout         ErrorKind = "timeout"
	ErrKindAuth            ErrorKind = "auth"
	ErrKindRateLimited     ErrorKind = "rate_limited"
	ErrKindInvalidResponse ErrorKind = "invalid_response"
)

// ProviderError represents a transport or API-level failure from an LLM
// provider. It is terminal for the current request; the core never retries.
type ProviderError struct {
	Err      error
	Provider string
	Kind     ErrorKind
	Message  string
	Status   int
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// transportError maps a failed HTTP round trip to a ProviderError.
func transportError(provider string, err error) *ProviderError {
	kind := ErrKindInvalidResponse

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrKindTimeout
	}

	return &ProviderError{
		Provider: provider,
		Kind:     kind,
		Message:  "request failed",
		Err:      err,
	}
}

// statusError maps a non-200 API response to a ProviderError.
func statusError(provider string, status int, body string) *ProviderError {
	kind := ErrKindInvalidResponse
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrKindAuth
	case http.StatusTooManyRequests:
		kind = ErrKindRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = ErrKindTimeout
	}

	return &ProviderError{
		Provider: provider,
		Kind:     kind,
		Message:  body,
		Status:   status,
	}
}

// envelopeError reports a 200 response whose body couldn't be interpreted.
func envelopeError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     ErrKindInvalidResponse,
		Message:  message,
		Err:      err,
	}
}
