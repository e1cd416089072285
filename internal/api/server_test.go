package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetmirror/fleetmirror/internal/api"
	"github.com/fleetmirror/fleetmirror/internal/poller"
)

type staticStatus struct {
	status poller.Status
}

func (s *staticStatus) Status() poller.Status {
	return s.status
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := api.NewServer(&staticStatus{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()

	router := api.NewServer(&staticStatus{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "go_version")
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	src := &staticStatus{status: poller.Status{
		LastPoll:            now,
		LastSuccess:         now,
		OK:                  true,
		ConsecutiveFailures: 0,
	}}
	router := api.NewServer(src)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got poller.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Equal(t, now, got.LastPoll)
	assert.Equal(t, 0, got.ConsecutiveFailures)
	assert.Empty(t, got.LastError)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		router := api.NewServer(&staticStatus{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("served when registry provided", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetmirror_test_total",
			Help: "Test counter.",
		})
		require.NoError(t, registry.Register(counter))
		counter.Inc()

		router := api.NewServer(&staticStatus{}, api.WithMetricsRegistry(registry))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "fleetmirror_test_total 1")
	})
}
