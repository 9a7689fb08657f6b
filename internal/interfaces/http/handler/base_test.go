package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/catalog/backend/internal/domain/shared"
	"github.com/catalog/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("not found maps to 404", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, shared.ErrNotFound)

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("stale version maps to 412", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, shared.ErrStaleVersion)

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
		assert.Equal(t, dto.ErrCodeStaleVersion, resp.Error.Code)
	})

	t.Run("concurrency conflict maps to 409", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, shared.ErrConcurrencyConflict)

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConcurrencyConflict, resp.Error.Code)
	})

	t.Run("duplicate resource maps to 409", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, shared.ErrAlreadyExists)

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, errors.Join(errors.New("outer"), shared.ErrInvalidInput))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	})

	t.Run("unknown errors map to 500", func(t *testing.T) {
		c, w := newTestContext()

		h.HandleDomainError(c, errors.New("boom"))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	})

	t.Run("error response echoes the request ID", func(t *testing.T) {
		c, w := newTestContext()
		c.Set("request_id", "req-abc")

		h.HandleDomainError(c, shared.ErrNotFound)

		resp := decodeResponse(t, w)
		assert.Equal(t, "req-abc", resp.Error.RequestID)
	})
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.SuccessWithMeta(c, []string{"a", "b"}, 12, 1, 5)

	resp := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
