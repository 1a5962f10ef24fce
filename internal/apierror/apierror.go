// Package apierror defines the structured error taxonomy for remote API
// failures. The kind is assigned at the transport boundary from the HTTP
// status code, never inferred from error message text.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a remote API failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindNotFound
	KindServer
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a classified API failure.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when the request never completed
	Op      string // operation that failed, e.g. "llm.generate-question"
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromStatus builds an Error for a non-2xx HTTP response.
func FromStatus(op string, status int, body string) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}
	return &Error{Kind: kind, Status: status, Op: op, Message: body}
}

// Network wraps a transport-level failure (connection refused, DNS, timeout).
func Network(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// Validation reports a payload or input that failed shape validation before
// entering application state.
func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// KindOf returns the kind of the first Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// UserMessage maps an error to a short human-readable message suitable for
// display. Prior displayed data is left intact by callers; this only names
// what went wrong.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindUnauthorized:
		return "Unauthorized access. Please log in again."
	case KindNotFound:
		return "Requested resource not found."
	case KindServer:
		return "Server error. Please try again later."
	case KindValidation:
		return "Invalid input. Please check your data."
	default:
		return "An unknown error occurred. Please try again later."
	}
}
