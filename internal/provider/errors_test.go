package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorMapsStatusToKind(t *testing.T) {
	tests := []struct {
		status   int
		kind     Kind
		sentinel error
	}{
		{http.StatusBadRequest, KindBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, KindInvalidCredentials, ErrInvalidSubscriptionKey},
		{http.StatusNotFound, KindNotFound, ErrNotFound},
		{http.StatusConflict, KindConflict, ErrConflict},
		{http.StatusInternalServerError, KindServerError, ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := NewError(tt.status, "boom")
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, "boom", err.Message)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, ErrMomo)

			for _, other := range tests {
				if other.status != tt.status {
					assert.NotErrorIs(t, err, other.sentinel)
				}
			}
		})
	}
}

func TestNewErrorUnmappedStatusIsGeneric(t *testing.T) {
	for _, status := range []int{402, 403, 405, 422, 429, 502, 503, 504} {
		err := NewError(status, "")
		assert.Equal(t, KindGeneric, err.Kind, status)
		assert.Equal(t, status, err.StatusCode)
		assert.ErrorIs(t, err, ErrMomo)
		assert.NotErrorIs(t, err, ErrInternalServer)
		assert.Contains(t, err.Error(), fmt.Sprint(status))
	}
}

func TestErrorFromResponseMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Invalid subscription key","error":"ignored"}`, "Invalid subscription key"},
		{"error field", `{"error":"login_failed"}`, "login_failed"},
		{"empty message falls back to error", `{"message":"","error":"login_failed"}`, "login_failed"},
		{"whole body", `{"code": "RESOURCE_NOT_FOUND"}`, `{"code":"RESOURCE_NOT_FOUND"}`},
		{"non-string message", `{"message":{"detail":"x"}}`, `{"detail":"x"}`},
		{"raw text", `Service Unavailable`, `Service Unavailable`},
		{"json array is raw text", `["a"]`, `["a"]`},
		{"empty body", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ErrorFromResponse(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, KindBadRequest, err.Kind)
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("get status: %w", NewError(http.StatusNotFound, "missing"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(errors.New("other")))

	var apiErr *Error
	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, "missing", apiErr.Message)
}

func TestTransportError(t *testing.T) {
	err := &TransportError{Op: http.MethodPost, URL: "http://localhost/x", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrMomo)
	assert.Equal(t, 0, StatusCode(err))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "amount", Message: "must be greater than zero"}
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.NotErrorIs(t, err, ErrMomo)
	assert.Equal(t, "momo: invalid amount: must be greater than zero", err.Error())
}
