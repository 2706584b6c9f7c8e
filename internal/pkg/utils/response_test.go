package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-search-service/internal/pkg/errors"
)

func sendErrorStatus(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return SendError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestSendError(t *testing.T) {
	t.Run("bad argument keeps reason", func(t *testing.T) {
		status, out := sendErrorStatus(t, errors.BadArgument("radius must be a non-negative decimal no greater than 100000"))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, errors.CodeBadArgument, out.Error.Code)
		assert.Equal(t, "radius must be a non-negative decimal no greater than 100000", out.Error.Message)
	})

	t.Run("does not exist", func(t *testing.T) {
		status, out := sendErrorStatus(t, errors.DoesNotExist("store x"))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, errors.CodeDoesNotExist, out.Error.Code)
	})

	t.Run("operation failed hides cause", func(t *testing.T) {
		status, out := sendErrorStatus(t, errors.OperationFailed("load candidate stores", stderrors.New("dial tcp: refused")))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, errors.CodeOperationFailed, out.Error.Code)
		assert.Equal(t, "Operation failed", out.Error.Message)
	})

	t.Run("unknown error", func(t *testing.T) {
		status, out := sendErrorStatus(t, stderrors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, errors.CodeOperationFailed, out.Error.Code)
	})
}
