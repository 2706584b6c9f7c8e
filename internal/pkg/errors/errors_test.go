package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-search-service/internal/pkg/errors"
)

func TestTaxonomy(t *testing.T) {
	t.Run("bad argument keeps reason verbatim", func(t *testing.T) {
		err := errors.BadArgument("Unrecognized Query Parameter: foo")
		assert.Equal(t, "Unrecognized Query Parameter: foo", err.Message)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.True(t, errors.IsBadArgument(err))
		assert.False(t, errors.IsOperationFailed(err))
	})

	t.Run("operation failed unwraps cause", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := errors.OperationFailed("load stores", cause)

		wrapped := fmt.Errorf("search: %w", err)
		assert.True(t, errors.IsOperationFailed(wrapped))
		assert.ErrorIs(t, wrapped, cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)

		appErr, ok := errors.As(wrapped)
		require.True(t, ok)
		assert.Equal(t, errors.CodeOperationFailed, appErr.Code)
	})

	t.Run("does not exist", func(t *testing.T) {
		err := errors.DoesNotExist("store")
		assert.True(t, errors.IsDoesNotExist(err))
		assert.Equal(t, http.StatusNotFound, err.StatusCode)
	})

	t.Run("with details does not mutate sentinel", func(t *testing.T) {
		withDetails := errors.ErrBadArgument.WithDetails(map[string]interface{}{"key": "radius"})
		assert.Equal(t, "radius", withDetails.Details["key"])
		assert.Empty(t, errors.ErrBadArgument.Details)
	})
}
