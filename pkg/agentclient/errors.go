package agentclient

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureKind classifies an API failure so callers can pick a recovery
// strategy without inspecting status codes.
type FailureKind string

const (
	KindInvalidRequest FailureKind = "invalid_request"
	KindAuthentication FailureKind = "authentication"
	KindPayment        FailureKind = "payment"
	KindRateLimit      FailureKind = "rate_limit"
	KindServer         FailureKind = "server"
)

// APIError is a non-2xx response from the backend, carrying the localized
// message from the error envelope.
type APIError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error (%d %s): %s (%s)", e.StatusCode, e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Kind, e.Message)
}

// TransportError is a failure to reach the backend at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func kindFromStatus(status int) FailureKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusPaymentRequired:
		return KindPayment
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		if status >= 400 && status < 500 {
			return KindInvalidRequest
		}
		return KindServer
	}
}

// KindOf classifies any error returned by this package. Transport failures
// and unknown errors report KindServer.
func KindOf(err error) FailureKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}
