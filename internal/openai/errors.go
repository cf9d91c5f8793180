package openai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies provider failures into the buckets the retry policy
// and the localized user messages care about.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request" // 400
	KindAuthentication ErrorKind = "authentication"  // 401
	KindPayment        ErrorKind = "payment"         // 402 / insufficient quota
	KindRateLimit      ErrorKind = "rate_limit"      // 429
	KindAPI            ErrorKind = "api"             // anything else from the provider
)

// Error is a canonical provider error carrying the upstream status.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("provider error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// TransportError represents transport-level failures (DNS, timeouts,
// connection reset) while talking to the provider, as opposed to a
// response the provider actually sent.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// kindFromStatus maps provider HTTP status codes to error kinds.
func kindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidRequest
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusPaymentRequired:
		return KindPayment
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindAPI
	}
}

// KindOf extracts the ErrorKind from an error chain.
// Transport failures and unknown errors report KindAPI.
func KindOf(err error) ErrorKind {
	var provErr *Error
	if errors.As(err, &provErr) && provErr != nil {
		return provErr.Kind
	}
	return KindAPI
}
