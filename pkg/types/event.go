package types

import "time"

// Event represents a Polymarket event: a group of related markets.
type Event struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Closed      bool      `json:"closed"`
	Archived    bool      `json:"archived"`
	Volume24hr  float64   `json:"volume24hr"`
	EndDate     time.Time `json:"endDate"`
	Markets     []Market  `json:"markets"`
}

// Tradeable reports whether the event is open for trading.
func (e *Event) Tradeable() bool {
	return e.Active && !e.Closed && !e.Archived
}

// MarketIDs returns the ids of the markets belonging to the event.
func (e *Event) MarketIDs() []string {
	ids := make([]string, 0, len(e.Markets))
	for i := range e.Markets {
		ids = append(ids, e.Markets[i].ID)
	}
	return ids
}
