package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorWrapping(t *testing.T) {
	dbErr := NewDatabaseError("failed to list readings", sql.ErrConnDone)
	wrapped := fmt.Errorf("hourly rollup: %w", dbErr)

	assert.True(t, IsDatabase(wrapped))
	assert.False(t, IsAuth(wrapped))
	assert.ErrorIs(t, wrapped, sql.ErrConnDone)
	assert.Equal(t, http.StatusInternalServerError, dbErr.Code)
	assert.Contains(t, dbErr.Error(), "internal:")
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestAPIErrorBuilders(t *testing.T) {
	err := NewAuthError("invalid token", nil).WithRequestID("req_1").WithDetails("expired")

	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.Equal(t, "req_1", err.RequestID)
	assert.Equal(t, "expired", err.Details)
	assert.Equal(t, "authentication: invalid token", err.Error())
	assert.Equal(t, http.StatusTooManyRequests, NewRateLimitError("slow down", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, NewUnavailableError("store down", nil).Code)
}
