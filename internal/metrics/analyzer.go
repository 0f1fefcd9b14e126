package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query analyzer Prometheus metrics.
var (
	AnalyzerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatorlens",
			Name:      "analyzer_requests_total",
			Help:      "Total number of query analysis requests",
		},
		[]string{"model", "status"},
	)

	AnalyzerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creatorlens",
			Name:      "analyzer_request_duration_seconds",
			Help:      "Query analysis request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	AnalyzerFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatorlens",
			Name:      "analyzer_fallbacks_total",
			Help:      "Analyses degraded to an empty filter snapshot",
		},
		[]string{"reason"}, // "transport" / "parse"
	)
)

var analyzerMetricsRegistered bool

// RegisterAnalyzerMetrics registers Prometheus analyzer metrics. Must be called once from main.
func RegisterAnalyzerMetrics() {
	if analyzerMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalyzerRequestsTotal)
	prometheus.MustRegister(AnalyzerRequestDuration)
	prometheus.MustRegister(AnalyzerFallbacksTotal)
	analyzerMetricsRegistered = true
}
