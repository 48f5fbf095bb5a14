package news

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// TavilyClient queries the Tavily search API as an alternative context
// source when no NewsAPI key is configured.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTavilyClient creates a Tavily client. baseURL defaults to production.
func NewTavilyClient(apiKey, baseURL string, logger *zap.Logger) *TavilyClient {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	Topic      string `json:"topic"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search issues a single Tavily news search for the keywords.
func (c *TavilyClient) Search(ctx context.Context, keywords string) ([]types.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: ErrMissingAPIKey}
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:     c.apiKey,
		Query:      keywords,
		Topic:      "news",
		MaxResults: 10,
	})
	if err != nil {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.RemoteAPIError{
			API:        "tavily",
			Op:         "search",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	var parsed tavilyResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "tavily", Op: "search", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	articles := make([]types.NewsArticle, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		articles = append(articles, types.NewsArticle{
			Title:       r.Title,
			Description: r.Content,
			Source:      "tavily",
			URL:         r.URL,
		})
	}

	c.logger.Debug("tavily-search",
		zap.String("keywords", keywords),
		zap.Int("articles", len(articles)))

	return articles, nil
}
