package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	creativesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "creative_engine_creatives_analyzed_total",
		Help: "Creatives successfully analyzed across all batch runs.",
	})
	analysisFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "creative_engine_analysis_failures_total",
		Help: "Creatives skipped during batch analysis due to errors.",
	})
	scoreHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "creative_engine_creative_score",
		Help:    "Distribution of composite creative scores.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)
