package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &buf)
	s.routes().ServeHTTP(rec, req)
	return rec
}

func createTestSession(t *testing.T, s *Server) SessionResponse {
	t.Helper()

	rec := doRequest(t, s, "POST", "/sessions", CreateSessionRequest{
		HomeTeam: "Cardinals",
		AwayTeam: "Titans",
		Seed:     42,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.NotEmpty(t, resp.Players)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()
	rec := doRequest(t, s, "GET", "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "disabled", health["database"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	rec := doRequest(t, s, "GET", "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Database, "no database block without a pool")
	assert.NotEmpty(t, resp.Uptime)
}

func TestCreateAndFetchSession(t *testing.T) {
	s := newTestServer()
	created := createTestSession(t, s)

	rec := doRequest(t, s, "GET", "/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Cardinals", fetched.HomeTeam)
	assert.Len(t, fetched.Players, len(created.Players))
}

func TestSessionNotFound(t *testing.T) {
	s := newTestServer()
	rec := doRequest(t, s, "GET", "/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAtBatEndpoint(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)
	player := session.Players[0]

	body := AtBatRequest{PlayerID: player.ID}
	body.Context.Inning = 9
	body.Context.HomeScore = 2
	body.Context.AwayScore = 2

	path := fmt.Sprintf("/sessions/%s/atbat", session.ID)
	rec := doRequest(t, s, "POST", path, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, player.ID, result["player_id"])
	assert.NotEmpty(t, result["description"])
}

func TestAtBatUnknownPlayer(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)

	path := fmt.Sprintf("/sessions/%s/atbat", session.ID)
	rec := doRequest(t, s, "POST", path, AtBatRequest{PlayerID: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisEndpointCaches(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)
	player := session.Players[0]

	path := fmt.Sprintf("/sessions/%s/players/%s/analysis", session.ID, player.ID)

	rec := doRequest(t, s, "GET", path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "GET", path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s.metrics.mu.RLock()
	hits, misses := s.metrics.cacheHits, s.metrics.cacheMisses
	s.metrics.mu.RUnlock()
	assert.Equal(t, int64(1), hits, "second identical read should hit the cache")
	assert.Equal(t, int64(1), misses)
}

func TestMomentumEndpoints(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)
	base := fmt.Sprintf("/sessions/%s/momentum", session.ID)

	rec := doRequest(t, s, "GET", base, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var m MomentumResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 50.0, m.Home)
	assert.Equal(t, 50.0, m.Away)

	// Feed a home homerun through the event endpoint.
	event := MomentumEventRequest{Kind: "swing", Outcome: "homerun"}
	event.Context.Inning = 9
	event.Context.HomeScore = 3
	event.Context.AwayScore = 2
	event.Context.BattingTeam = "home"

	rec = doRequest(t, s, "POST", base+"/event", event)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "GET", base, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Greater(t, m.Home, 50.0)
	assert.InDelta(t, 100.0, m.Home+m.Away, 1e-9)

	rec = doRequest(t, s, "POST", base+"/decay", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "POST", base+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 50.0, m.Home)
}

func TestMomentumEventUnknownKind(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)

	path := fmt.Sprintf("/sessions/%s/momentum/event", session.ID)
	rec := doRequest(t, s, "POST", path, MomentumEventRequest{Kind: "earthquake"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveWithoutPersistence(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)

	rec := doRequest(t, s, "POST", fmt.Sprintf("/sessions/%s/save", session.ID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(t, s, "POST", fmt.Sprintf("/sessions/%s/restore", session.ID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer()
	session := createTestSession(t, s)
	player := session.Players[0]

	body := AtBatRequest{PlayerID: player.ID}
	body.Context.Inning = 1
	doRequest(t, s, "POST", fmt.Sprintf("/sessions/%s/atbat", session.ID), body)

	rec := doRequest(t, s, "GET", fmt.Sprintf("/sessions/%s/stats", session.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lines map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	assert.Equal(t, float64(1), lines[player.ID]["plate_appearances"])
}
