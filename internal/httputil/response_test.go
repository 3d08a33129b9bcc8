package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, map[string]string{"status": "api is running"}, http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "api is running", body["status"])
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, "Something went wrong.", http.StatusInternalServerError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Something went wrong.", body.Error)
	assert.Empty(t, body.Code)
}

func TestRespondErrorWithCode(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorWithCode(rec, "Task not found.", CodeTaskNotFound, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Task not found.", body.Error)
	assert.Equal(t, CodeTaskNotFound, body.Code)
}

func TestRespondError_OmitsCodeField(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, "Invalid request body.", http.StatusBadRequest)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw, "code")
}
