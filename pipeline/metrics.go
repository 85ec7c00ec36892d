package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics. Registered once on the default registry; commands that
// serve /metrics expose them, everything else just increments.
var (
	documentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "karma",
		Subsystem: "pipeline",
		Name:      "documents_processed_total",
		Help:      "Documents processed, by pipeline mode.",
	}, []string{"mode"})

	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "karma",
		Subsystem: "pipeline",
		Name:      "stage_failures_total",
		Help:      "Extraction stage failures absorbed by the degrade policy.",
	}, []string{"stage"})

	triplesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "karma",
		Subsystem: "pipeline",
		Name:      "triples_added_total",
		Help:      "Triples committed to the knowledge graph.",
	})

	triplesDeprecated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "karma",
		Subsystem: "pipeline",
		Name:      "triples_deprecated_total",
		Help:      "Triples transitioned to deprecated by maintenance runs.",
	})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "karma",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of pipeline runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"mode"})
)
