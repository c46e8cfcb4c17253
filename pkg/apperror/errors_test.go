package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewPersistenceError("save sale", cause)

	assert.True(t, IsPersistenceError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to save sale: disk I/O error", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)

	wrapped := fmt.Errorf("complete: %w", err)
	assert.True(t, IsPersistenceError(wrapped))
	assert.Same(t, err, GetAppError(wrapped))
}

func TestValidationError(t *testing.T) {
	err := NewFieldError("price", "must be positive")

	assert.True(t, IsValidationError(err))
	assert.False(t, IsPersistenceError(err))
	assert.Equal(t, []FieldError{{Field: "price", Message: "must be positive"}}, err.Errors)
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "boom", appErr.Message)
}
