package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrapes_total",
			Help: "Total number of scrape attempts by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)

	ScrapeDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scrape_duration_seconds",
			Help:    "Duration of scrape calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
