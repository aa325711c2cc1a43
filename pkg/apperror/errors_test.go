package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewNotFoundError("Product"))
	appErr := GetAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Product not found", appErr.Message)

	hidden := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, hidden.Code)
	assert.Equal(t, "Internal server error", hidden.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(http.StatusBadGateway, "Failed to save transaction", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("title", "Title is required")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "title", Message: "Title is required"}}, err.Errors)
	assert.True(t, IsAppError(err))
}
