package gamma

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

func marketJSON(id string, volume24hr float64, spread float64) string {
	return fmt.Sprintf(`{
		"id": %q,
		"question": "Question %s",
		"active": true,
		"closed": false,
		"spread": %f,
		"volume24hr": %f,
		"outcomes": "[\"Yes\", \"No\"]",
		"outcomePrices": "[\"0.40\", \"0.60\"]",
		"clobTokenIds": "[\"tok-%s-yes\", \"tok-%s-no\"]"
	}`, id, id, spread, volume24hr, id, id)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&Config{
		BaseURL: srv.URL,
		Logger:  zap.NewNop(),
	})
	return srv, client
}

func TestTrendingMarketsSortedAndTruncated(t *testing.T) {
	// Deliberately unsorted upstream payload: the client must re-sort.
	volumes := []float64{300, 900, 100, 700, 500}
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("path = %s, want /markets", r.URL.Path)
		}
		if got := r.URL.Query().Get("closed"); got != "false" {
			t.Errorf("closed = %q, want false", got)
		}
		if got := r.URL.Query().Get("ascending"); got != "false" {
			t.Errorf("ascending = %q, want false", got)
		}

		body := "["
		for i, v := range volumes {
			if i > 0 {
				body += ","
			}
			body += marketJSON(fmt.Sprintf("m%d", i), v, 0.01)
		}
		body += "]"
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	markets, err := client.TrendingMarkets(t.Context(), 3)
	if err != nil {
		t.Fatalf("TrendingMarkets: %v", err)
	}

	if len(markets) != 3 {
		t.Fatalf("len = %d, want 3", len(markets))
	}
	for i := 1; i < len(markets); i++ {
		if markets[i].Volume24hr > markets[i-1].Volume24hr {
			t.Errorf("markets not sorted descending at %d: %f > %f", i, markets[i].Volume24hr, markets[i-1].Volume24hr)
		}
	}
	if markets[0].Volume24hr != 900 {
		t.Errorf("top market volume = %f, want 900", markets[0].Volume24hr)
	}
}

func TestListMarketsInvalidSortField(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://unused", Logger: zap.NewNop()})

	_, err := client.ListMarkets(t.Context(), 5, "liquidity")
	if err == nil {
		t.Fatal("expected error for invalid sort field")
	}

	var apiErr *types.RemoteAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *types.RemoteAPIError", err)
	}
}

func TestListMarketsUpstreamError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.ListMarkets(t.Context(), 5, SortBySpread)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var apiErr *types.RemoteAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *types.RemoteAPIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
}

func TestMarketBySlug(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("slug"); got != "will-it-rain" {
			t.Errorf("slug = %q, want will-it-rain", got)
		}
		fmt.Fprint(w, "["+marketJSON("m1", 100, 0.01)+"]")
	})

	market, err := client.MarketBySlug(t.Context(), "will-it-rain")
	if err != nil {
		t.Fatalf("MarketBySlug: %v", err)
	}
	if market.ID != "m1" {
		t.Errorf("ID = %q, want m1", market.ID)
	}
}

func TestMarketBySlugNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	})

	_, err := client.MarketBySlug(t.Context(), "no-such-market")
	if err == nil {
		t.Fatal("expected error for unknown slug")
	}
}

func TestListEventsSortByMarketCount(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("path = %s, want /events", r.URL.Path)
		}
		fmt.Fprintf(w, `[
			{"id": "e1", "title": "One market", "active": true, "volume24hr": 900,
			 "markets": [%s]},
			{"id": "e2", "title": "Two markets", "active": true, "volume24hr": 100,
			 "markets": [%s, %s]}
		]`, marketJSON("m1", 1, 0.01), marketJSON("m2", 1, 0.01), marketJSON("m3", 1, 0.01))
	})

	events, err := client.ListEvents(t.Context(), 10, SortByMarketCount)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].ID != "e2" {
		t.Errorf("first event = %s, want e2 (more markets)", events[0].ID)
	}
}

func TestTradeableEventsDropsClosed(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": "open", "active": true, "closed": false, "archived": false, "volume24hr": 10},
			{"id": "closed", "active": true, "closed": true, "archived": false, "volume24hr": 20},
			{"id": "archived", "active": true, "closed": false, "archived": true, "volume24hr": 30}
		]`)
	})

	events, err := client.TradeableEvents(t.Context(), 10)
	if err != nil {
		t.Fatalf("TradeableEvents: %v", err)
	}

	if len(events) != 1 || events[0].ID != "open" {
		t.Errorf("events = %v, want only the open one", events)
	}
}
