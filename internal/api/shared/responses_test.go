package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{name: "object", status: http.StatusOK, data: map[string]interface{}{"id": "abc"}, expectedBody: `{"id":"abc"}`},
		{name: "empty list", status: http.StatusOK, data: []string{}, expectedBody: `[]`},
		{name: "nil", status: http.StatusOK, data: nil, expectedBody: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, r, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(SetTraceID(r.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusNotFound, "class not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "class not found", body.Error)
	assert.Equal(t, GetTraceID(r.Context()), body.TraceID)
	assert.NotEmpty(t, body.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)
			r := httptest.NewRequest(http.MethodGet, "/api/clases", nil)
			r = r.WithContext(logger.WithLogger(r.Context(), log))
			w := httptest.NewRecorder()

			err := errors.New("dial mongodb://admin:hunter2@db:27017 failed")
			RespondWithErrorAndLog(w, r, tc.status, "Something went wrong", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "hunter2")
			assert.NotContains(t, w.Body.String(), "dial")

			entries, perr := buf.GetLogEntries()
			require.NoError(t, perr)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "hunter2")
			assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
		})
	}
}
