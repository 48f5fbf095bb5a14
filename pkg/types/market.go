package types

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Market represents a Polymarket market from the Gamma API.
//
// Gamma encodes outcomes, outcome prices and CLOB token ids as JSON strings
// inside the JSON payload ("[\"Yes\", \"No\"]"), so the exported slice fields
// are populated by a custom unmarshaler.
type Market struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Closed      bool      `json:"closed"`
	Spread      float64   `json:"spread"`
	Volume      float64   `json:"volumeNum"`
	Volume24hr  float64   `json:"volume24hr"`
	EndDate     time.Time `json:"endDate"`

	Outcomes      []string  `json:"-"`
	OutcomePrices []float64 `json:"-"`
	TokenIDs      []string  `json:"-"`

	RawOutcomes      string `json:"outcomes"`
	RawOutcomePrices string `json:"outcomePrices"`
	RawClobTokenIDs  string `json:"clobTokenIds"`
}

// UnmarshalJSON parses the nested JSON-string fields into their slice forms.
func (m *Market) UnmarshalJSON(data []byte) error {
	type Alias Market
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(m),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if m.RawOutcomes != "" {
		_ = json.Unmarshal([]byte(m.RawOutcomes), &m.Outcomes)
	}
	if m.RawOutcomePrices != "" {
		// Prices arrive as strings: "[\"0.12\", \"0.88\"]"
		var priceStrs []string
		if err := json.Unmarshal([]byte(m.RawOutcomePrices), &priceStrs); err == nil {
			m.OutcomePrices = make([]float64, 0, len(priceStrs))
			for _, s := range priceStrs {
				var p float64
				if err := json.Unmarshal([]byte(s), &p); err != nil {
					m.OutcomePrices = nil
					break
				}
				m.OutcomePrices = append(m.OutcomePrices, p)
			}
		} else {
			// Some payloads use a plain float array
			_ = json.Unmarshal([]byte(m.RawOutcomePrices), &m.OutcomePrices)
		}
	}
	if m.RawClobTokenIDs != "" {
		_ = json.Unmarshal([]byte(m.RawClobTokenIDs), &m.TokenIDs)
	}

	return nil
}

// Aligned reports whether outcomes and outcome prices pair up by index.
func (m *Market) Aligned() bool {
	return len(m.Outcomes) > 0 && len(m.Outcomes) == len(m.OutcomePrices)
}

// PriceFor returns the price aligned with the given outcome.
// Matching is case-insensitive (YES/Yes, NO/No).
func (m *Market) PriceFor(outcome string) (float64, bool) {
	i := m.outcomeIndex(outcome)
	if i < 0 || i >= len(m.OutcomePrices) {
		return 0, false
	}
	return m.OutcomePrices[i], true
}

// TokenFor returns the CLOB token id aligned with the given outcome.
func (m *Market) TokenFor(outcome string) (string, bool) {
	i := m.outcomeIndex(outcome)
	if i < 0 || i >= len(m.TokenIDs) {
		return "", false
	}
	return m.TokenIDs[i], true
}

func (m *Market) outcomeIndex(outcome string) int {
	for i, o := range m.Outcomes {
		if strings.EqualFold(o, outcome) {
			return i
		}
	}
	return -1
}
