// Package metrics defines Prometheus metrics for traversals and the HTTP service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"parbfs/pkg/bfs"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parbfs_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parbfs_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parbfs_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	TraversalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parbfs_traversals_total",
			Help: "Completed traversals by strategy",
		},
		[]string{"strategy"},
	)

	TraversalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parbfs_traversal_duration_seconds",
			Help:    "Wall-clock traversal time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"strategy"},
	)

	StepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parbfs_step_duration_seconds",
			Help:    "Per-level expansion time in seconds by step kind",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"step"},
	)

	VerticesDiscovered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "parbfs_vertices_discovered_total",
			Help: "Vertices reached across all traversals, roots included",
		},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parbfs_cache_lookups_total",
			Help: "Distance cache lookups by result",
		},
		[]string{"result"},
	)

	GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "parbfs_graph_nodes",
			Help: "Vertices in the loaded graph",
		},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "parbfs_graph_edges",
			Help: "Directed edges in the loaded graph",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		TraversalsTotal, TraversalDuration, StepDuration, VerticesDiscovered,
		CacheLookups, GraphNodes, GraphEdges,
	)
}

// ObserveTraversal records a finished traversal and each of its levels.
func ObserveTraversal(res bfs.Result) {
	strategy := res.Strategy.String()
	TraversalsTotal.WithLabelValues(strategy).Inc()
	TraversalDuration.WithLabelValues(strategy).Observe(res.Elapsed.Seconds())
	VerticesDiscovered.Add(float64(res.Reached))
	for _, s := range res.Steps {
		StepDuration.WithLabelValues(s.Step.String()).Observe(s.Duration.Seconds())
	}
}
