package wallet

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		rpcURL  string
		logger  *zap.Logger
		wantErr bool
	}{
		{"valid-config", "https://polygon-rpc.com", zap.NewNop(), false},
		{"empty-rpc-url", "", zap.NewNop(), true},
		{"nil-logger", "https://polygon-rpc.com", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.rpcURL, "https://data-api.polymarket.com", tt.logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && client == nil {
				t.Error("NewClient() returned nil client")
			}
		})
	}
}

func TestGetPositions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/positions" {
			t.Errorf("path = %s, want /positions", r.URL.Path)
		}
		if got := r.URL.Query().Get("user"); got != "0xabc" {
			t.Errorf("user = %q, want 0xabc", got)
		}

		fmt.Fprint(w, `[
			{"slug": "will-it-rain", "outcome": "Yes", "size": 10.5,
			 "currentValue": 4.2, "initialValue": 3.1, "cashPnl": 1.1, "percentPnl": 35.4},
			{"slug": "dust", "outcome": "No", "size": 0, "currentValue": 0}
		]`)
	}))
	defer srv.Close()

	client, err := NewClient("https://polygon-rpc.com", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	positions, err := client.GetPositions(t.Context(), "0xabc")
	if err != nil {
		t.Fatalf("GetPositions: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("len = %d, want 1 (zero-size positions dropped)", len(positions))
	}
	if positions[0].MarketSlug != "will-it-rain" || positions[0].Value != 4.2 {
		t.Errorf("position = %+v", positions[0])
	}
}

func TestGetPositionsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient("https://polygon-rpc.com", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.GetPositions(t.Context(), "0xabc")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
