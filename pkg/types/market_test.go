package types

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMarketUnmarshalJSON(t *testing.T) {
	payload := `{
		"id": "512345",
		"question": "Will it rain in NYC tomorrow?",
		"slug": "will-it-rain-nyc",
		"active": true,
		"closed": false,
		"spread": 0.02,
		"volumeNum": 150000.5,
		"volume24hr": 12000.25,
		"outcomes": "[\"Yes\", \"No\"]",
		"outcomePrices": "[\"0.12\", \"0.88\"]",
		"clobTokenIds": "[\"111\", \"222\"]"
	}`

	var m Market
	err := json.Unmarshal([]byte(payload), &m)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m.ID != "512345" {
		t.Errorf("ID = %q, want 512345", m.ID)
	}
	if len(m.Outcomes) != 2 || m.Outcomes[0] != "Yes" || m.Outcomes[1] != "No" {
		t.Errorf("Outcomes = %v, want [Yes No]", m.Outcomes)
	}
	if len(m.OutcomePrices) != 2 || m.OutcomePrices[0] != 0.12 || m.OutcomePrices[1] != 0.88 {
		t.Errorf("OutcomePrices = %v, want [0.12 0.88]", m.OutcomePrices)
	}
	if len(m.TokenIDs) != 2 || m.TokenIDs[0] != "111" {
		t.Errorf("TokenIDs = %v, want [111 222]", m.TokenIDs)
	}
	if !m.Aligned() {
		t.Error("Aligned() = false, want true")
	}
}

func TestMarketUnmarshalJSONPlainFloatPrices(t *testing.T) {
	payload := `{
		"id": "1",
		"outcomes": "[\"Yes\", \"No\"]",
		"outcomePrices": "[0.4, 0.6]"
	}`

	var m Market
	err := json.Unmarshal([]byte(payload), &m)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(m.OutcomePrices) != 2 || m.OutcomePrices[0] != 0.4 {
		t.Errorf("OutcomePrices = %v, want [0.4 0.6]", m.OutcomePrices)
	}
}

func TestMarketUnmarshalJSONMisaligned(t *testing.T) {
	payload := `{
		"id": "1",
		"outcomes": "[\"Yes\", \"No\"]",
		"outcomePrices": "[\"0.5\"]"
	}`

	var m Market
	err := json.Unmarshal([]byte(payload), &m)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m.Aligned() {
		t.Error("Aligned() = true for mismatched outcome/price counts")
	}
}

func TestPriceForCaseInsensitive(t *testing.T) {
	m := Market{
		Outcomes:      []string{"Yes", "No"},
		OutcomePrices: []float64{0.3, 0.7},
		TokenIDs:      []string{"tok-yes", "tok-no"},
	}

	tests := []struct {
		name    string
		outcome string
		want    float64
		wantOK  bool
	}{
		{"exact-match", "Yes", 0.3, true},
		{"upper-case", "YES", 0.3, true},
		{"lower-case", "no", 0.7, true},
		{"unknown-outcome", "Maybe", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.PriceFor(tt.outcome)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PriceFor(%q) = (%v, %v), want (%v, %v)", tt.outcome, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTokenFor(t *testing.T) {
	m := Market{
		Outcomes: []string{"Yes", "No"},
		TokenIDs: []string{"tok-yes", "tok-no"},
	}

	tok, ok := m.TokenFor("no")
	if !ok || tok != "tok-no" {
		t.Errorf("TokenFor(no) = (%q, %v), want (tok-no, true)", tok, ok)
	}

	_, ok = m.TokenFor("Maybe")
	if ok {
		t.Error("TokenFor(Maybe) ok = true, want false")
	}
}
