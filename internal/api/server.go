// Package api provides the operational HTTP endpoint for the adapter:
// health, version, last-poll status, and metrics.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetmirror/fleetmirror/internal/logger"
	"github.com/fleetmirror/fleetmirror/internal/poller"
	"github.com/fleetmirror/fleetmirror/internal/versions"
)

// StatusSource exposes the last poll snapshot.
type StatusSource interface {
	Status() poller.Status
}

// ServerOption configures the ops API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	registry *prometheus.Registry
}

// WithMetricsRegistry serves the given Prometheus registry at /metrics.
func WithMetricsRegistry(registry *prometheus.Registry) ServerOption {
	return func(cfg *serverConfig) {
		cfg.registry = registry
	}
}

// NewServer creates and configures the HTTP router with the given status
// source and options
func NewServer(src StatusSource, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler)
	r.Get("/status", statusHandler(src))

	if cfg.registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))
	}

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// versionHandler returns build version information
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, versions.GetVersionInfo())
}

// statusHandler returns the last poll snapshot
func statusHandler(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSONResponse(w, src.Status())
	}
}

func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}
