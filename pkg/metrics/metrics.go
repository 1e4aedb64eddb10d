package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ChatRequestsTotal      *prometheus.CounterVec
	CrisisDetectionsTotal  prometheus.Counter
	GenerationDuration     prometheus.Histogram
	GenerationFailures     *prometheus.CounterVec
	JournalEntriesWritten  prometheus.Counter
	RedisOperationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat messages processed, by outcome",
		}, []string{"outcome"}),
		CrisisDetectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crisis_detections_total",
			Help: "Total number of messages flagged by the crisis classifier",
		}),
		GenerationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Time taken for completion provider calls",
			Buckets: prometheus.DefBuckets,
		}),
		GenerationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_failures_total",
			Help: "Total number of failed completion provider calls, by kind",
		}, []string{"kind"}),
		JournalEntriesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "journal_entries_written_total",
			Help: "Total number of journal entries written",
		}),
		RedisOperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Time taken for Redis operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
