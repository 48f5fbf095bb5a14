package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CallsTotal tracks completed LLM API calls.
	CallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_llm_calls_total",
		Help: "Total number of LLM API calls",
	})

	// CallErrorsTotal tracks failed LLM API calls.
	CallErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_llm_call_errors_total",
		Help: "Total number of failed LLM API calls",
	})

	// CallDurationSeconds tracks LLM call latency.
	CallDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_agent_llm_call_duration_seconds",
		Help:    "Duration of LLM API calls",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	// ParseFailuresTotal tracks superforecaster responses with no parseable
	// probability.
	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_agent_llm_parse_failures_total",
		Help: "Total number of superforecaster responses that failed probability parsing",
	})
)
