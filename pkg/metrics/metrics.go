package metrics

import (
	"io"
	"runtime"
	"time"

	"github.com/prometheus/common/expfmt"
)

// Detection status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordDetection records one detection request. algorithm is the algorithm
// that produced the result, or empty when every fallback failed.
func (r *Registry) RecordDetection(requested, algorithm string, err error, duration time.Duration, communities int, modularity float64) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.DetectionsTotal.WithLabelValues(requested, algorithm, status).Inc()
	if err != nil {
		return
	}
	r.DetectionDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.CommunitiesDetected.WithLabelValues(algorithm).Observe(float64(communities))
	r.LastModularity.WithLabelValues(algorithm).Set(modularity)
}

// RecordFallback records an attempt that fell through to the next algorithm
func (r *Registry) RecordFallback(algorithm, reason string) {
	r.FallbacksTotal.WithLabelValues(algorithm, reason).Inc()
}

// RecordComparison records one comparator run
func (r *Registry) RecordComparison(duration time.Duration, failures int) {
	r.ComparisonsTotal.Inc()
	r.ComparisonDuration.Observe(duration.Seconds())
	r.ComparisonFailuresTotal.Add(float64(failures))
}

// SetGraphSize records the size of the loaded graph
func (r *Registry) SetGraphSize(nodes, edges, links int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphLinksTotal.Set(float64(links))
}

// UpdateSystemMetrics samples process metrics
func (r *Registry) UpdateSystemMetrics(started time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.UptimeSeconds.Set(time.Since(started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
	r.MemorySysBytes.Set(float64(mem.Sys))
}

// WriteText writes every registered metric in the Prometheus text format
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
