package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure by HTTP status
type Kind string

const (
	KindGeneric            Kind = "momo_error"
	KindBadRequest         Kind = "bad_request"
	KindInvalidCredentials Kind = "invalid_subscription_key"
	KindNotFound           Kind = "resource_not_found"
	KindConflict           Kind = "conflict"
	KindServerError        Kind = "internal_server_error"
)

// Sentinels for errors.Is. Every *Error matches ErrMomo plus the sentinel of its kind.
var (
	ErrMomo                   = errors.New("momo: api error")
	ErrBadRequest             = errors.New("momo: bad request")
	ErrInvalidSubscriptionKey = errors.New("momo: invalid subscription key")
	ErrNotFound               = errors.New("momo: resource not found")
	ErrConflict               = errors.New("momo: conflict")
	ErrInternalServer         = errors.New("momo: internal server error")

	ErrTransport      = errors.New("momo: transport failure")
	ErrInvalidRequest = errors.New("momo: invalid request")
)

var kindByStatus = map[int]Kind{
	http.StatusBadRequest:          KindBadRequest,
	http.StatusUnauthorized:        KindInvalidCredentials,
	http.StatusNotFound:            KindNotFound,
	http.StatusConflict:            KindConflict,
	http.StatusInternalServerError: KindServerError,
}

var sentinelByKind = map[Kind]error{
	KindBadRequest:         ErrBadRequest,
	KindInvalidCredentials: ErrInvalidSubscriptionKey,
	KindNotFound:           ErrNotFound,
	KindConflict:           ErrConflict,
	KindServerError:        ErrInternalServer,
}

// Error is a failed API call. StatusCode is the HTTP status the server
// answered with and Message the best-effort reason extracted from the body.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

// NewError maps an HTTP status code to the matching error kind. Codes
// without a dedicated kind produce KindGeneric carrying the code.
func NewError(statusCode int, message string) *Error {
	kind, ok := kindByStatus[statusCode]
	if !ok {
		kind = KindGeneric
	}
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("momo: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("momo: %s (status %d)", e.Kind, e.StatusCode)
}

// Is matches ErrMomo and the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	if target == ErrMomo {
		return true
	}
	sentinel, ok := sentinelByKind[e.Kind]
	return ok && target == sentinel
}

// ErrorFromResponse builds an Error from a failed response. The message is
// taken from the body's "message" field, then its "error" field, then the
// whole JSON body, and finally the raw text when the body is not a JSON object.
func ErrorFromResponse(statusCode int, body []byte) *Error {
	return NewError(statusCode, extractMessage(body))
}

func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)

	var obj map[string]json.RawMessage
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &obj) != nil {
		return string(body)
	}

	for _, field := range []string{"message", "error"} {
		if msg := fieldText(obj[field]); msg != "" {
			return msg
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}

// fieldText renders a JSON value as text; empty strings and null count as absent.
func fieldText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	switch string(raw) {
	case "false", "0", "{}", "[]":
		return ""
	}
	return string(raw)
}

// TransportError is a call that never produced an HTTP response
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("momo: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ValidationError is a request rejected before any network call
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("momo: invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// IsNotFound checks if err is a 404 from the API
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if err is a 409 from the API
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an API error
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
