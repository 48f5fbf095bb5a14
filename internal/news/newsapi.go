package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

// NewsAPIClient queries the NewsAPI /v2/everything endpoint.
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNewsAPIClient creates a NewsAPI client. baseURL defaults to production.
func NewNewsAPIClient(apiKey, baseURL string, logger *zap.Logger) *NewsAPIClient {
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// Search issues a single /v2/everything query for the keywords.
func (c *NewsAPIClient) Search(ctx context.Context, keywords string) ([]types.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: ErrMissingAPIKey}
	}

	params := url.Values{}
	params.Add("q", keywords)
	params.Add("sortBy", "publishedAt")
	params.Add("language", "en")

	requestURL := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.RemoteAPIError{
			API:        "newsapi",
			Op:         "search",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	var parsed newsAPIResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if parsed.Status != "ok" {
		return nil, &types.RemoteAPIError{API: "newsapi", Op: "search", Err: fmt.Errorf("upstream error: %s", parsed.Message)}
	}

	articles := make([]types.NewsArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}

	c.logger.Debug("news-search",
		zap.String("keywords", keywords),
		zap.Int("articles", len(articles)))

	return articles, nil
}
