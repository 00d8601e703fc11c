// Package metrics holds the Prometheus collectors shared across the
// application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Source labels for AnalyzeTotal.
const (
	SourceAI    = "ai"
	SourceRules = "rules"
	SourceError = "error"
)

//nolint: gochecknoglobals
var (
	// AnalyzeTotal counts website analyses by the source that produced the
	// final categorization.
	AnalyzeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "navhub",
		Name:      "analyze_total",
		Help:      "Website analyses by categorization source.",
	}, []string{"source"})

	// AnalyzeDuration observes the end-to-end latency of website analyses.
	AnalyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "navhub",
		Name:      "analyze_duration_seconds",
		Help:      "End-to-end website analysis latency.",
		Buckets:   DefaultBuckets,
	})

	// ExtractCacheHits counts metadata extraction cache hits.
	ExtractCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navhub",
		Name:      "extract_cache_hits_total",
		Help:      "Metadata extraction results served from cache.",
	})

	// ChatStreamsTotal counts started assistant chat streams.
	ChatStreamsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navhub",
		Name:      "chat_streams_total",
		Help:      "Assistant chat streams started.",
	})

	// ChatRecommendationsTotal counts website recommendations emitted by the
	// assistant.
	ChatRecommendationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "navhub",
		Name:      "chat_recommendations_total",
		Help:      "Website recommendations emitted by the assistant.",
	})
)
