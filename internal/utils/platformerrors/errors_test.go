package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected int
	}{
		{"not found", ErrorTypeNotFound, http.StatusNotFound},
		{"validation", ErrorTypeValidation, http.StatusBadRequest},
		{"conflict", ErrorTypeConflict, http.StatusConflict},
		{"database", ErrorTypeDatabaseError, http.StatusInternalServerError},
		{"internal", ErrorTypeInternal, http.StatusInternalServerError},
		{"unknown", ErrorType("SOMETHING"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorTypeToHTTPStatus(tt.errType))
		})
	}
}

func TestAsError_PreservesTypedErrors(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "User not found", nil, "inner-uuid")

	wrapped := AsError(ctx, LayerDomain, inner, "failed to load user")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	assert.Equal(t, "User not found", wrapped.Message)
	assert.Equal(t, "inner-uuid", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
}

func TestAsError_UntypedBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := AsError(context.Background(), LayerDomain, cause, "failed to load user")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "noop"))
}

func TestNewHTTPErrorResponse_HidesInternalMessages(t *testing.T) {
	resp := NewHTTPErrorResponse(http.StatusInternalServerError, "pq: relation does not exist")
	assert.Equal(t, GenericErrorMessage, resp.Message)
	assert.Equal(t, "Internal Server Error", resp.Error)

	resp = NewHTTPErrorResponse(http.StatusBadRequest, "Message content cannot be empty")
	assert.Equal(t, "Message content cannot be empty", resp.Message)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Bad Request", resp.Error)
}
