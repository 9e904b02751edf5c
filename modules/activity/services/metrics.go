package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retromat_activity_import_records_total",
			Help: "Activities written by import passes.",
		},
		[]string{"variant", "locale", "outcome"},
	)
	importPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retromat_activity_import_passes_total",
			Help: "Import passes by result.",
		},
		[]string{"variant", "result"},
	)
	importPassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retromat_activity_import_pass_duration_seconds",
			Help:    "Duration of import passes including the commit.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"variant"},
	)
)
