package settings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writesTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "settings_writes_total",
			Help: "Number of stored setting changes, by field.",
		},
		[]string{"field"},
	)

	sessionDuration = promauto.NewHistogram( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Name:    "settings_session_duration_seconds",
			Help:    "Duration of completed sessions.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), //nolint:mnd
		},
	)
)
