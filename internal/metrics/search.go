package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics. The stage label tells how far filter
// relaxation had to go before products matched ("0" means nothing
// matched at any stage).
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apparel_search",
			Name:      "search_requests_total",
			Help:      "Total number of product searches",
		},
		[]string{"status"},
	)

	SearchStageHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apparel_search",
			Name:      "search_stage_hits_total",
			Help:      "Searches resolved per relaxation stage",
		},
		[]string{"stage"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "apparel_search",
			Name:      "search_duration_seconds",
			Help:      "End-to-end product search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchStageHitsTotal)
	prometheus.MustRegister(SearchDuration)
	searchMetricsRegistered = true
}

// ObserveSearch records one completed search.
func ObserveSearch(stage int, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SearchRequestsTotal.WithLabelValues(status).Inc()
	if err == nil {
		SearchStageHitsTotal.WithLabelValues(strconv.Itoa(stage)).Inc()
		SearchDuration.Observe(seconds)
	}
}
