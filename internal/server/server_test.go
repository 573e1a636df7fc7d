package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruviz/internal/cache"
	"github.com/bnema/lruviz/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	initial := []cache.Entry[string, string]{
		{Key: "1", Value: "a"},
		{Key: "2", Value: "b"},
		{Key: "3", Value: "c"},
	}
	s, err := New(config.ServerConfig{ListenAddr: "127.0.0.1:0"}, zerolog.Nop(), 3, initial)
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func getState(t *testing.T, s *Server) statePayload {
	t.Helper()

	rec := doRequest(t, s, http.MethodGet, "/api/v1/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var state statePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func stateKeys(state statePayload) []string {
	keys := make([]string, 0, len(state.Entries))
	for _, e := range state.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestEntries_SeededNewestFirst(t *testing.T) {
	s := newTestServer(t)

	state := getState(t, s)
	assert.Equal(t, 3, state.Capacity)
	assert.Equal(t, 3, state.Size)
	assert.Equal(t, []string{"3", "2", "1"}, stateKeys(state))
}

func TestGet_HitReturnsValueAndPromotes(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/cache/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entry entryPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, entryPayload{Key: "1", Value: "a"}, entry)

	state := getState(t, s)
	assert.Equal(t, []string{"1", "3", "2"}, stateKeys(state))
	assert.Equal(t, 1, state.Hits)
	assert.Equal(t, 0, state.Misses)
}

func TestGet_MissIs404AndLeavesStateUnchanged(t *testing.T) {
	s := newTestServer(t)
	before := getState(t, s)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/cache/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after := getState(t, s)
	assert.Equal(t, stateKeys(before), stateKeys(after))
	assert.Equal(t, 1, after.Misses)
}

func TestSet_NewKeyEvictsLRU(t *testing.T) {
	s := newTestServer(t)

	// Promote "1" so "2" is the LRU entry.
	doRequest(t, s, http.MethodGet, "/api/v1/cache/1", "")

	rec := doRequest(t, s, http.MethodPut, "/api/v1/cache/4", `{"value":"d"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp setResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2", resp.Evicted)

	state := getState(t, s)
	assert.Equal(t, []string{"4", "1", "3"}, stateKeys(state))
	assert.Equal(t, 3, state.Size)
}

func TestSet_ExistingKeyUpdatesWithoutEviction(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/cache/2", `{"value":"bb"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp setResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Evicted)

	state := getState(t, s)
	assert.Equal(t, []string{"2", "3", "1"}, stateKeys(state))
	assert.Equal(t, entryPayload{Key: "2", Value: "bb"}, state.Entries[0])
}

func TestSet_EmptyValueIsStored(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/cache/empty", `{"value":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/cache/empty", "")
	assert.Equal(t, http.StatusOK, rec.Code, "an empty value is a value, not absence")
}

func TestSet_RejectsInvalidBody(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/cache/x", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete_IsIdempotent(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/cache/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"3", "1"}, stateKeys(getState(t, s)))

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/cache/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"3", "1"}, stateKeys(getState(t, s)))
}

func TestClear_EmptiesCache(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/clear", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	state := getState(t, s)
	assert.Zero(t, state.Size)
	assert.Empty(t, state.Entries)
}

func TestReset_RestoresSeedAndCounters(t *testing.T) {
	s := newTestServer(t)

	doRequest(t, s, http.MethodGet, "/api/v1/cache/1", "")
	doRequest(t, s, http.MethodGet, "/api/v1/cache/nope", "")
	doRequest(t, s, http.MethodPut, "/api/v1/cache/4", `{"value":"d"}`)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var state statePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, []string{"3", "2", "1"}, stateKeys(state))
	assert.Zero(t, state.Hits)
	assert.Zero(t, state.Misses)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	doRequest(t, s, http.MethodGet, "/api/v1/cache/1", "")
	doRequest(t, s, http.MethodGet, "/api/v1/cache/nope", "")

	rec := doRequest(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "lruviz_cache_hits_total 1")
	assert.Contains(t, body, "lruviz_cache_misses_total 1")
	assert.Contains(t, body, "lruviz_cache_entries 3")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
