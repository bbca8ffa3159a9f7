package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStock("p-1", 3, 5)

	assert.Equal(t, CodeInsufficientStock, err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.Equal(t, int64(3), err.Details["have"])
	assert.Equal(t, int64(5), err.Details["need"])
	assert.Equal(t, "p-1", err.Details["product_id"])
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("issue lines: %w", NewStockNotFound("p-2"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeStockNotFound, appErr.Code)
	assert.True(t, HasCode(wrapped, CodeStockNotFound))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatusForPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := NewInternal(errors.New("connection reset"))
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, err.Err)
}
