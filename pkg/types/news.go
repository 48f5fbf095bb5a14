package types

import "time"

// NewsArticle is a normalized article from a news search provider.
// Articles have no identity beyond their URL.
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}
