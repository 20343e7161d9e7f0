// Package metrics exposes the service's prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the pipeline and fetcher report into. All
// collectors are registered on the registry passed to New, so tests can use
// a private registry.
type Metrics struct {
	RankBatches     prometheus.Counter
	ItemsScored     prometheus.Counter
	ItemsEnriched   prometheus.Counter
	FetchFailures   *prometheus.CounterVec
	FetchedItems    *prometheus.CounterVec
	ScoringDuration prometheus.Histogram
}

// New creates and registers the service collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RankBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ranker",
			Name:      "rank_batches_total",
			Help:      "Number of ranking batches processed.",
		}),
		ItemsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ranker",
			Name:      "items_scored_total",
			Help:      "Number of items scored across all batches.",
		}),
		ItemsEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ranker",
			Name:      "items_enriched_total",
			Help:      "Number of items enriched across all batches.",
		}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranker",
			Name:      "fetch_failures_total",
			Help:      "Number of failed feed fetches by source.",
		}, []string{"source"}),
		FetchedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranker",
			Name:      "fetched_items_total",
			Help:      "Number of feed items fetched by source.",
		}, []string{"source"}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ranker",
			Name:      "scoring_duration_seconds",
			Help:      "Wall time spent scoring a batch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.RankBatches,
		m.ItemsScored,
		m.ItemsEnriched,
		m.FetchFailures,
		m.FetchedItems,
		m.ScoringDuration,
	)
	return m
}
