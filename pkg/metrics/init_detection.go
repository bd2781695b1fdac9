package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.DetectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegraph_detections_total",
			Help: "Total number of community detection requests",
		},
		[]string{"requested", "algorithm", "status"},
	)

	r.DetectionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegraph_detection_duration_seconds",
			Help:    "Community detection duration in seconds, fallbacks included",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"algorithm"},
	)

	r.FallbacksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegraph_fallbacks_total",
			Help: "Total number of algorithm attempts that fell through to the next algorithm",
		},
		[]string{"algorithm", "reason"},
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegraph_communities_detected",
			Help:    "Number of communities per successful detection",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 1000},
		},
		[]string{"algorithm"},
	)

	r.LastModularity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codegraph_last_modularity",
			Help: "Modularity of the most recent successful detection",
		},
		[]string{"algorithm"},
	)

	r.ComparisonsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "codegraph_comparisons_total",
			Help: "Total number of algorithm comparisons",
		},
	)

	r.ComparisonDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codegraph_comparison_duration_seconds",
			Help:    "Algorithm comparison duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)

	r.ComparisonFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "codegraph_comparison_failures_total",
			Help: "Total number of comparison entries that failed after fallback",
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "codegraph_graph_nodes",
			Help: "Number of code elements in the loaded graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "codegraph_graph_edges",
			Help: "Number of distinct relationships in the loaded graph",
		},
	)

	r.GraphLinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "codegraph_graph_links",
			Help: "Number of linked node pairs in the loaded graph",
		},
	)
}
