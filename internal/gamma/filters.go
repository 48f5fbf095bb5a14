package gamma

import "github.com/mselser95/polymarket-agent/pkg/types"

// FilterTradeableMarkets keeps markets that are open for trading and whose
// outcome and price lists pair up.
func FilterTradeableMarkets(markets []types.Market) []types.Market {
	out := make([]types.Market, 0, len(markets))
	for i := range markets {
		m := &markets[i]
		if m.Active && !m.Closed && m.Aligned() {
			out = append(out, *m)
		}
	}
	return out
}

// FilterTradeableEvents keeps events that are active, not closed and not
// archived.
func FilterTradeableEvents(events []types.Event) []types.Event {
	out := make([]types.Event, 0, len(events))
	for i := range events {
		if events[i].Tradeable() {
			out = append(out, events[i])
		}
	}
	return out
}
