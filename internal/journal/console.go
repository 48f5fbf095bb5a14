package journal

import (
	"context"
	"fmt"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// ConsoleJournal implements Storage by pretty-printing to the console.
type ConsoleJournal struct {
	logger *zap.Logger
}

// NewConsoleJournal creates a new console journal.
func NewConsoleJournal(logger *zap.Logger) *ConsoleJournal {
	return &ConsoleJournal{logger: logger}
}

// RecordDecision pretty-prints a scored decision.
func (c *ConsoleJournal) RecordDecision(ctx context.Context, d *types.TradeDecision) error {
	fmt.Println("────────────────────────────────────────────────────────────")
	fmt.Printf("DECISION  market %s\n", d.MarketID)
	fmt.Printf("Question:   %s\n", d.Question)
	fmt.Printf("Outcome:    %s @ %.3f\n", d.Outcome, d.Price)
	fmt.Printf("Confidence: %.3f (edge %+.3f)\n", d.Confidence, d.Edge)
	if d.Rationale != "" {
		fmt.Printf("Rationale:  %s\n", truncate(d.Rationale, 400))
	}
	return nil
}

// RecordTrade pretty-prints a submitted order.
func (c *ConsoleJournal) RecordTrade(ctx context.Context, d *types.TradeDecision, orderID string, size float64) error {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("TRADE SUBMITTED  order %s\n", orderID)
	fmt.Printf("Market:  %s (%s)\n", d.MarketID, d.Question)
	fmt.Printf("Side:    BUY %s @ %.3f, $%.2f\n", d.Outcome, d.Price, size)
	fmt.Println("════════════════════════════════════════════════════════════")
	return nil
}

// Close is a no-op for console journal.
func (c *ConsoleJournal) Close() error {
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
