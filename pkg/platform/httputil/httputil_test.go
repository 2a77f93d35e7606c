package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "checkinhub/pkg/domain-errors"
)

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(dErrors.CodeInvalidInput))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(dErrors.CodeConflict))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(dErrors.CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(dErrors.Code("unknown")))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count": 3}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Run("coded error echoes the message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, dErrors.New(dErrors.CodeNotFound, "attendee is not registered"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, "attendee is not registered", body["error_description"])
	})

	t.Run("internal errors hide the description", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, dErrors.Wrap(errors.New("pq: ssl required"), dErrors.CodeInternal, "store write failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("uncoded errors are internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
