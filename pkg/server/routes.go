package server

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-codegraph/pkg/metrics"
)

// SwappableHandler forwards to a handler that can be replaced while serving
type SwappableHandler struct {
	current atomic.Pointer[http.Handler]
}

// NewSwappableHandler creates a handler forwarding to h
func NewSwappableHandler(h http.Handler) *SwappableHandler {
	s := &SwappableHandler{}
	s.Swap(h)
	return s
}

// Swap replaces the target handler
func (s *SwappableHandler) Swap(h http.Handler) {
	s.current.Store(&h)
}

// ServeHTTP implements http.Handler
func (s *SwappableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*s.current.Load()).ServeHTTP(w, r)
}

// NewMux routes /graphql to the query handler, /metrics to the registry and
// /health to a liveness probe. registry may be nil.
func NewMux(query http.Handler, registry *metrics.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/graphql", query)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	}
	return mux
}
