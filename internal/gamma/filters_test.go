package gamma

import (
	"testing"

	"github.com/mselser95/polymarket-agent/pkg/types"
)

func TestFilterTradeableMarkets(t *testing.T) {
	markets := []types.Market{
		{ID: "ok", Active: true, Closed: false, Outcomes: []string{"Yes", "No"}, OutcomePrices: []float64{0.4, 0.6}},
		{ID: "inactive", Active: false, Outcomes: []string{"Yes", "No"}, OutcomePrices: []float64{0.4, 0.6}},
		{ID: "closed", Active: true, Closed: true, Outcomes: []string{"Yes", "No"}, OutcomePrices: []float64{0.4, 0.6}},
		{ID: "misaligned", Active: true, Outcomes: []string{"Yes", "No"}, OutcomePrices: []float64{0.4}},
	}

	got := FilterTradeableMarkets(markets)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("FilterTradeableMarkets = %v, want only 'ok'", got)
	}
}

func TestFilterTradeableEvents(t *testing.T) {
	events := []types.Event{
		{ID: "open", Active: true},
		{ID: "closed", Active: true, Closed: true},
		{ID: "archived", Active: true, Archived: true},
		{ID: "inactive", Active: false},
	}

	got := FilterTradeableEvents(events)
	if len(got) != 1 || got[0].ID != "open" {
		t.Errorf("FilterTradeableEvents = %v, want only 'open'", got)
	}
}
