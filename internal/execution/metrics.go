package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSubmittedTotal counts orders accepted by the CLOB.
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_orders_submitted_total",
		Help: "Total number of orders accepted by the CLOB",
	})

	// OrdersFailedTotal counts orders rejected or failed in transit.
	OrdersFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_orders_failed_total",
		Help: "Total number of order submissions that failed",
	})

	// OrderSubmitDurationSeconds tracks order submission latency.
	OrderSubmitDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_agent_order_submit_duration_seconds",
		Help:    "Order submission latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
