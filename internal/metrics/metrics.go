package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldgen_generations_total",
		Help: "Number of map generations by mode and outcome",
	}, []string{"mode", "outcome"})
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worldgen_generation_duration_seconds",
		Help:    "Wall-clock duration of map generation",
		Buckets: prometheus.DefBuckets,
	})
	landPercentGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worldgen_last_land_percent",
		Help: "Realized land percentage of the most recent successful generation",
	})
	fairRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worldgen_fair_retries_total",
		Help: "Number of extra pipeline attempts made by Fair mode",
	})
)

// RecordGeneration counts one finished generation attempt
func RecordGeneration(mode, outcome string) {
	generationsTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordDuration observes the generation wall-clock time
func RecordDuration(seconds float64) {
	generationDuration.Observe(seconds)
}

// RecordLandPercent publishes the realized land fraction of the last map
func RecordLandPercent(percent float64) {
	landPercentGauge.Set(percent)
}

// RecordFairRetry counts one Fair-mode re-attempt
func RecordFairRetry() {
	fairRetriesTotal.Inc()
}
