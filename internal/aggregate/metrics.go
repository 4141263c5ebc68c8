package aggregate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	artifactsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshbench_aggregate_artifacts_total",
			Help: "Number of artifacts routed by the bench aggregator.",
		},
		[]string{"status"},
	)

	aggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "meshbench_aggregation_duration_seconds",
			Help: "Duration of full aggregation passes.",
		},
	)
)
