package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	MessagesLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_messages_loaded_total",
		Help: "The total number of raw messages loaded into extraction runs",
	})

	RowsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_rows_ingested_total",
		Help: "The total number of raw rows ingested from scraper dumps",
	}, []string{"channel"})

	IngestDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_ingest_dropped_total",
		Help: "Total number of dump rows rejected at ingest by reason",
	}, []string{"reason"})

	DropsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_drops_total",
		Help: "Total number of messages dropped during assembly by reason",
	}, []string{"reason"})

	RecordsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_records_extracted_total",
		Help: "The total number of extracted records emitted",
	})

	ConflictingMessageIDs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_conflicting_message_ids_total",
		Help: "Total number of message ids that required conflict resolution",
	})

	RelationRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "market_relation_rows",
		Help: "Row count of each materialized relation after the last run",
	}, []string{"relation"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_runs_total",
		Help: "Total number of extraction runs by status",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "market_run_duration_seconds",
		Help:    "Duration in seconds of a full extraction run",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})

	DetectionsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_detections_loaded_total",
		Help: "Total number of object detection annotations loaded",
	})
)
