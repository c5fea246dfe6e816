package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaze-intelligence/sim-engine/momentum"
	"github.com/blaze-intelligence/sim-engine/simulation"
)

func newTestServer() *Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return &Server{
		config: &Config{
			AnalysisCacheTTL: 30 * time.Second,
		},
		logger:  logger,
		engine:  simulation.NewEngine(momentum.DefaultConfig(), logger),
		cache:   NewAnalysisCache(),
		metrics: NewMetrics(),
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer()

	handler := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "internal server error", apiErr.Error)
}

func TestLoggingMiddlewareCountsRequests(t *testing.T) {
	s := newTestServer()

	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))

	s.metrics.mu.RLock()
	defer s.metrics.mu.RUnlock()
	assert.Equal(t, int64(2), s.metrics.requestCount)
	assert.Equal(t, int64(0), s.metrics.errorCount, "4xx is not a server error")
}
