package apperror

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Kind is the coarse classification used to pick a user-facing message.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAPI        Kind = "api"
	KindValidation Kind = "validation"
	KindPermission Kind = "permission"
	KindUnknown    Kind = "unknown"
)

var messages = map[Kind]string{
	KindNetwork:    "Network connection failed. Please check your internet connection.",
	KindAPI:        "Server error occurred. Please try again later.",
	KindValidation: "Please check your input and try again.",
	KindPermission: "You do not have permission to perform this action.",
	KindUnknown:    "An unexpected error occurred. Please try again.",
}

// Message returns the fixed user-facing text for k.
func (k Kind) Message() string {
	if msg, ok := messages[k]; ok {
		return msg
	}
	return messages[KindUnknown]
}

// APIError is the gateway's normalized failure. StatusCode is zero when the
// request never produced an HTTP response.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FromResponse builds the error for a non-2xx response. detail wins when the
// body carried one.
func FromResponse(statusCode int, detail string) *APIError {
	msg := detail
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

// FromTransport wraps a failure that happened before any response arrived.
func FromTransport(operation string, err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Failed to %s: %v", operation, err),
		Err:     err,
	}
}

// Classify maps err onto the taxonomy.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 0 && apiErr.Err != nil:
			return classifyTransport(apiErr.Err)
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return KindPermission
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return KindValidation
		default:
			return KindAPI
		}
	}

	return classifyTransport(err)
}

func classifyTransport(err error) Kind {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return KindNetwork
	}
	return KindUnknown
}

// AppError is the presentation-ready form of a failure. Details keeps the
// original text for logs.
type AppError struct {
	Kind      Kind
	Message   string
	Details   string
	Timestamp time.Time
	cause     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// New classifies err and attaches the fixed message, prefixed with context
// when given.
func New(err error, context string, now time.Time) *AppError {
	kind := Classify(err)
	msg := kind.Message()
	if context != "" {
		msg = context + ": " + msg
	}

	var details string
	if err != nil {
		details = err.Error()
	}

	return &AppError{
		Kind:      kind,
		Message:   msg,
		Details:   details,
		Timestamp: now,
		cause:     err,
	}
}

// Severe reports whether the failure should be logged at error level.
func (e *AppError) Severe() bool {
	return e.Kind == KindNetwork || e.Kind == KindAPI
}
