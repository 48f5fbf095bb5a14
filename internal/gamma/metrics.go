package gamma

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsFetchedTotal tracks markets returned by the Gamma API.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_gamma_markets_fetched_total",
		Help: "Total number of markets fetched from the Gamma API",
	})

	// EventsFetchedTotal tracks events returned by the Gamma API.
	EventsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_gamma_events_fetched_total",
		Help: "Total number of events fetched from the Gamma API",
	})

	// RequestDurationSeconds tracks Gamma API request latency.
	RequestDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_agent_gamma_request_duration_seconds",
		Help:    "Duration of Gamma API requests",
		Buckets: prometheus.DefBuckets,
	})

	// RequestErrorsTotal tracks Gamma API request failures.
	RequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_gamma_request_errors_total",
		Help: "Total number of Gamma API request failures",
	})
)
