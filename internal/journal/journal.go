// Package journal persists trade decisions and executed trades so every
// autonomous run leaves an auditable trail.
package journal

import (
	"context"

	"github.com/mselser95/polymarket-agent/pkg/types"
)

// Storage records what the trader decided and what it executed.
type Storage interface {
	// RecordDecision stores a scored decision, executed or not.
	RecordDecision(ctx context.Context, d *types.TradeDecision) error

	// RecordTrade stores a submitted order for a decision.
	RecordTrade(ctx context.Context, d *types.TradeDecision, orderID string, size float64) error

	// Close closes the storage connection.
	Close() error
}
