package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExternalAPICalls counts terminal upstream call outcomes, one
// increment per logical call (retries collapse into the final status).
var ExternalAPICalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "betbroker_external_api_calls_total",
	Help: "Terminal outcomes of upstream betting API calls",
}, []string{"endpoint", "method", "status"})

// ExternalAPIDuration observes the total latency of upstream calls
// including retries and backoff.
var ExternalAPIDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "betbroker_external_api_duration_seconds",
	Help:    "Latency of upstream betting API calls, retries included",
	Buckets: prometheus.DefBuckets,
}, []string{"endpoint"})

// BetsPlaced counts successfully persisted bet placements.
var BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "betbroker_bets_placed_total",
	Help: "Bets placed and persisted as pending",
})

// Settlements counts settled bets by outcome.
var Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "betbroker_settlements_total",
	Help: "Settled bets by outcome",
}, []string{"outcome"})
