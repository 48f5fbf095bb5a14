// Package news retrieves article context from external search providers.
// Absence of news is never fatal here: callers decide whether to degrade
// to running without context.
package news

import (
	"context"
	"errors"

	"github.com/mselser95/polymarket-agent/pkg/types"
)

// ErrMissingAPIKey is returned when a provider is constructed without a key.
var ErrMissingAPIKey = errors.New("missing API key")

// Searcher issues one upstream query for comma-separated keywords and
// returns articles in upstream order (typically recency).
type Searcher interface {
	Search(ctx context.Context, keywords string) ([]types.NewsArticle, error)
}
