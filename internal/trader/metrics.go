package trader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts pipeline runs.
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_trader_runs_total",
		Help: "Total number of trader pipeline runs",
	})

	// DecisionsTotal counts scored trade decisions.
	DecisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_trader_decisions_total",
		Help: "Total number of trade decisions produced",
	})

	// TradesExecutedTotal counts live trades submitted.
	TradesExecutedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_trader_trades_executed_total",
		Help: "Total number of trades executed",
	})

	// PipelineErrorsTotal counts recoverable pipeline failures.
	PipelineErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_trader_pipeline_errors_total",
		Help: "Total number of pipeline stage errors",
	})
)
