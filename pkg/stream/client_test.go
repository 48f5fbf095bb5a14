package stream

import "testing"

func TestBestBidAsk(t *testing.T) {
	tests := []struct {
		name    string
		update  MarketUpdate
		wantBid float64
		wantAsk float64
		wantOK  bool
	}{
		{
			name: "book-with-levels",
			update: MarketUpdate{
				EventType: "book",
				Bids:      []PriceLevel{{Price: "0.45", Size: "100"}},
				Asks:      []PriceLevel{{Price: "0.47", Size: "80"}},
			},
			wantBid: 0.45,
			wantAsk: 0.47,
			wantOK:  true,
		},
		{
			name: "empty-book",
			update: MarketUpdate{
				EventType: "book",
			},
			wantOK: false,
		},
		{
			name: "price-change-event",
			update: MarketUpdate{
				EventType: "price_change",
				Changes:   []PriceChange{{Price: "0.5", Side: "BUY", Size: "10"}},
			},
			wantOK: false,
		},
		{
			name: "unparseable-price",
			update: MarketUpdate{
				EventType: "book",
				Bids:      []PriceLevel{{Price: "n/a", Size: "1"}},
				Asks:      []PriceLevel{{Price: "0.5", Size: "1"}},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bid, ask, ok := tt.update.BestBidAsk()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (bid != tt.wantBid || ask != tt.wantAsk) {
				t.Errorf("bid/ask = %f/%f, want %f/%f", bid, ask, tt.wantBid, tt.wantAsk)
			}
		})
	}
}
