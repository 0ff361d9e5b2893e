package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknownAsStoreFailure(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	got := FromError(cause)

	assert.Equal(t, ErrStore.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	typed := Clone(ErrNotFound, "Student not found")
	wrapped := fmt.Errorf("dashboard: %w", typed)

	got := FromError(wrapped)
	assert.Same(t, typed, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestCloneMatchesTemplate(t *testing.T) {
	clone := Clone(ErrValidation, "bad roster")
	assert.True(t, errors.Is(clone, ErrValidation))
	assert.False(t, errors.Is(clone, ErrNotFound))
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestErrorString(t *testing.T) {
	err := Store(errors.New("boom"), "failed to insert attendance")
	assert.Equal(t, "failed to insert attendance: boom", err.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
