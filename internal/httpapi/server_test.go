package httpapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func x270Message(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(
		filepath.Join("..", "..", "testdata", "270.txt"),
	)
	require.NoError(t, err)
	return strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	return New("127.0.0.1:0", logger)
}

func postX12(
	t *testing.T,
	server *Server,
	body any,
	headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(
		http.MethodPost, "/x12", bytes.NewReader(payload),
	)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPostX12Models(t *testing.T) {
	server := testServer(t)
	rec := postX12(t, server, Request{X12: x270Message(t)}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var models []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
	require.Len(t, models, 1)
	assert.Equal(t, "270", models[0]["transactionSetCode"])
	assert.Equal(t, true, models[0]["valid"])
}

func TestPostX12Segments(t *testing.T) {
	server := testServer(t)
	rec := postX12(
		t,
		server,
		Request{X12: x270Message(t)},
		map[string]string{responseHeader: "segments"},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var segments []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &segments))
	require.Len(t, segments, 21)
	assert.Equal(t, "270", segments[2]["ST01"])
}

func TestPostX12UnknownResponseModeDefaultsToModels(t *testing.T) {
	server := testServer(t)
	rec := postX12(
		t,
		server,
		Request{X12: x270Message(t)},
		map[string]string{responseHeader: "nonsense"},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var models []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
	require.Len(t, models, 1)
	assert.Contains(t, models[0], "payload")
}

func TestPostX12InvalidBody(t *testing.T) {
	server := testServer(t)
	rec := postX12(t, server, map[string]any{"nope": true}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "Invalid request")
}

func TestPostX12MalformedMessage(t *testing.T) {
	server := testServer(t)
	rec := postX12(t, server, Request{X12: "not an x12 message"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "Invalid X12 payload")
}

func TestHealthz(t *testing.T) {
	server := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
