package types

import "time"

// TradeDecision is the outcome of scoring a single market with the LLM.
// Decisions are ephemeral: produced per run and journaled, never mutated.
type TradeDecision struct {
	RunID      string    `json:"run_id"`
	MarketID   string    `json:"market_id"`
	Question   string    `json:"question"`
	Outcome    string    `json:"outcome"`
	TokenID    string    `json:"token_id"`
	Price      float64   `json:"price"`
	Confidence float64   `json:"confidence"`
	Edge       float64   `json:"edge"`
	Rationale  string    `json:"rationale"`
	CreatedAt  time.Time `json:"created_at"`
}
