package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ingestion",
			Name:      "messages_processed_total",
			Help:      "Total number of archive messages processed by the ingestion pipeline.",
		},
		[]string{"category", "status"}, // status: "persisted", "ignored"
	)

	batchDurationHist = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ingestion",
			Name:      "batch_duration_seconds",
			Help:      "Duration of one concurrent batch, including all persist attempts.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
