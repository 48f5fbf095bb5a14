// Package trader runs the autonomous pipeline: fetch tradeable events,
// narrow them to relevant markets, score each with the superforecaster and
// execute (or just journal) the single best trade per run.
package trader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mselser95/polymarket-agent/internal/journal"
	"github.com/mselser95/polymarket-agent/internal/llm"
	"github.com/mselser95/polymarket-agent/internal/rag"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// MarketSource provides tradeable events to score.
type MarketSource interface {
	TradeableEvents(ctx context.Context, limit int) ([]types.Event, error)
}

// Forecaster scores a single outcome of a market.
type Forecaster interface {
	Superforecast(ctx context.Context, eventTitle, question, outcome string) (*llm.Forecast, error)
}

// Executor submits a buy order for a market outcome.
type Executor interface {
	ExecuteTrade(ctx context.Context, market *types.Market, outcome string, size float64) (string, error)
}

// Retriever narrows events to the ones relevant to a query.
type Retriever interface {
	Build(ctx context.Context, dir string, records []rag.Record) error
	Query(ctx context.Context, dir, query string, k int) ([]rag.Result, error)
}

// Config holds pipeline tuning knobs.
type Config struct {
	Threshold  float64 // minimum confidence to execute
	TradeSize  float64 // USDC per trade
	EventLimit int     // events fetched per run
	MaxMarkets int     // markets scored per run
	MaxSpread  float64
	MinPrice   float64
	MaxPrice   float64
	Relevance  string // empty disables the RAG filter
	IndexDir   string
	TopK       int
	DryRun     bool
}

// Agent wires the pipeline stages together.
type Agent struct {
	source     MarketSource
	forecaster Forecaster
	executor   Executor
	retriever  Retriever
	journal    journal.Storage
	cfg        Config
	logger     *zap.Logger
}

// NewAgent creates an agent. Executor may be nil for dry runs; retriever may
// be nil to skip the relevance filter.
func NewAgent(source MarketSource, forecaster Forecaster, executor Executor, retriever Retriever, j journal.Storage, cfg Config, logger *zap.Logger) *Agent {
	return &Agent{
		source:     source,
		forecaster: forecaster,
		executor:   executor,
		retriever:  retriever,
		journal:    j,
		cfg:        cfg,
		logger:     logger,
	}
}

// ScoredMarket pairs a market with its decision for selection.
type ScoredMarket struct {
	Market   types.Market
	Decision types.TradeDecision
}

// Run executes one full pipeline pass.
func (a *Agent) Run(ctx context.Context) error {
	RunsTotal.Inc()
	runID := uuid.NewString()
	logger := a.logger.With(zap.String("run-id", runID))

	events, err := a.source.TradeableEvents(ctx, a.cfg.EventLimit)
	if err != nil {
		PipelineErrorsTotal.Inc()
		return fmt.Errorf("fetch events: %w", err)
	}
	logger.Info("events-fetched", zap.Int("count", len(events)))

	events, err = a.filterRelevant(ctx, events)
	if err != nil {
		// Relevance filtering is best-effort: fall through with all events.
		logger.Warn("relevance-filter-failed", zap.Error(err))
	}

	candidates := a.selectMarkets(events)
	logger.Info("markets-selected", zap.Int("count", len(candidates)))

	var scoredMarkets []ScoredMarket
	for i := range candidates {
		m := &candidates[i].market
		forecast, err := a.forecaster.Superforecast(ctx, candidates[i].eventTitle, m.Question, m.Outcomes[0])
		if err != nil {
			PipelineErrorsTotal.Inc()
			logger.Warn("forecast-failed", zap.String("market-id", m.ID), zap.Error(err))
			continue
		}

		d := a.decide(runID, candidates[i].eventTitle, m, forecast)
		DecisionsTotal.Inc()

		err = a.journal.RecordDecision(ctx, &d)
		if err != nil {
			logger.Warn("journal-failed", zap.String("market-id", m.ID), zap.Error(err))
		}

		scoredMarkets = append(scoredMarkets, ScoredMarket{Market: *m, Decision: d})
	}

	best, ok := SelectBestTrade(scoredMarkets)
	if !ok {
		logger.Info("no-trade-candidates")
		return nil
	}

	logger.Info("best-trade",
		zap.String("market-id", best.Decision.MarketID),
		zap.String("outcome", best.Decision.Outcome),
		zap.Float64("confidence", best.Decision.Confidence),
		zap.Float64("edge", best.Decision.Edge))

	if best.Decision.Confidence < a.cfg.Threshold {
		logger.Info("below-threshold",
			zap.Float64("confidence", best.Decision.Confidence),
			zap.Float64("threshold", a.cfg.Threshold))
		return nil
	}

	if a.cfg.DryRun || a.executor == nil {
		logger.Info("dry-run-skipping-execution", zap.String("market-id", best.Decision.MarketID))
		return nil
	}

	orderID, err := a.executor.ExecuteTrade(ctx, &best.Market, best.Decision.Outcome, a.cfg.TradeSize)
	if err != nil {
		PipelineErrorsTotal.Inc()
		return fmt.Errorf("execute trade: %w", err)
	}
	TradesExecutedTotal.Inc()

	err = a.journal.RecordTrade(ctx, &best.Decision, orderID, a.cfg.TradeSize)
	if err != nil {
		logger.Warn("journal-failed", zap.String("order-id", orderID), zap.Error(err))
	}

	logger.Info("trade-executed",
		zap.String("order-id", orderID),
		zap.String("market-id", best.Decision.MarketID))

	return nil
}

// RunLoop re-runs the pipeline at each interval until the context ends.
// Errors are logged and the loop continues.
func (a *Agent) RunLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := a.Run(ctx)
		if err != nil {
			a.logger.Error("run-failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// filterRelevant keeps only the events whose text the retrieval index ranks
// relevant to the configured query. A nil retriever or empty query keeps
// everything.
func (a *Agent) filterRelevant(ctx context.Context, events []types.Event) ([]types.Event, error) {
	if a.retriever == nil || a.cfg.Relevance == "" || len(events) == 0 {
		return events, nil
	}

	records := make([]rag.Record, 0, len(events))
	for i := range events {
		records = append(records, rag.Record{
			SourceID: events[i].ID,
			Text:     events[i].Title + "\n" + events[i].Description,
		})
	}

	err := a.retriever.Build(ctx, a.cfg.IndexDir, records)
	if err != nil {
		return events, err
	}

	results, err := a.retriever.Query(ctx, a.cfg.IndexDir, a.cfg.Relevance, a.cfg.TopK)
	if err != nil {
		return events, err
	}

	keep := make(map[string]bool, len(results))
	for _, r := range results {
		keep[r.SourceID] = true
	}

	var filtered []types.Event
	for i := range events {
		if keep[events[i].ID] {
			filtered = append(filtered, events[i])
		}
	}

	a.logger.Info("events-filtered",
		zap.Int("before", len(events)),
		zap.Int("after", len(filtered)))

	return filtered, nil
}

type candidate struct {
	eventTitle string
	market     types.Market
}

// selectMarkets flattens events into markets that pass the numeric filters,
// capped at MaxMarkets. Order follows the incoming event order so runs are
// deterministic for a fixed fetch.
func (a *Agent) selectMarkets(events []types.Event) []candidate {
	var out []candidate
	for i := range events {
		for j := range events[i].Markets {
			m := events[i].Markets[j]
			if !m.Active || m.Closed || !m.Aligned() {
				continue
			}
			// Only binary markets: decide() prices both sides.
			if len(m.Outcomes) != 2 || len(m.TokenIDs) != 2 {
				continue
			}
			if m.Spread > a.cfg.MaxSpread {
				continue
			}
			p := m.OutcomePrices[0]
			if p < a.cfg.MinPrice || p > a.cfg.MaxPrice {
				continue
			}
			out = append(out, candidate{eventTitle: events[i].Title, market: m})
			if len(out) >= a.cfg.MaxMarkets {
				return out
			}
		}
	}
	return out
}

// decide turns a forecast into a trade decision, picking whichever side of
// the market the forecast gives the larger edge.
func (a *Agent) decide(runID, eventTitle string, m *types.Market, f *llm.Forecast) types.TradeDecision {
	p := f.Probability
	edgeFirst := p - m.OutcomePrices[0]
	edgeSecond := (1 - p) - m.OutcomePrices[1]

	idx := 0
	edge := edgeFirst
	confidence := p
	if edgeSecond > edgeFirst {
		idx = 1
		edge = edgeSecond
		confidence = 1 - p
	}

	// A failed parse carries FailureProbability: it must never look like a
	// confident decision on either side.
	if !f.Parsed {
		idx = 0
		edge = llm.FailureProbability
		confidence = llm.FailureProbability
	}

	return types.TradeDecision{
		RunID:      runID,
		MarketID:   m.ID,
		Question:   m.Question,
		Outcome:    m.Outcomes[idx],
		TokenID:    m.TokenIDs[idx],
		Price:      m.OutcomePrices[idx],
		Confidence: confidence,
		Edge:       edge,
		Rationale:  firstLine(f.Rationale),
		CreatedAt:  time.Now().UTC(),
	}
}

// SelectBestTrade returns the decision with the highest confidence. Ties go
// to the earliest candidate so a fixed input always yields the same pick.
func SelectBestTrade(candidates []ScoredMarket) (ScoredMarket, bool) {
	if len(candidates) == 0 {
		return ScoredMarket{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Decision.Confidence > best.Decision.Confidence {
			best = c
		}
	}
	return best, true
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
