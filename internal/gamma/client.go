package gamma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/mselser95/polymarket-agent/pkg/cache"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Market sort fields accepted by ListMarkets.
const (
	SortBySpread     = "spread"
	SortByVolume     = "volume"
	SortByVolume24hr = "volume24hr"
)

// Event sort fields accepted by ListEvents.
const (
	SortByMarketCount = "number_of_markets"
)

// Gamma rate limit for /markets and /events, kept well under the documented
// 300 requests per 10s.
const gammaRatePerSec = 18

// Client is an HTTP client for the Polymarket Gamma API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Config holds Gamma client configuration. Cache is optional.
type Config struct {
	BaseURL  string
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewClient creates a new Gamma API client.
func NewClient(cfg *Config) *Client {
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:  rate.NewLimiter(gammaRatePerSec, 10),
		cache:    cfg.Cache,
		cacheTTL: ttl,
		logger:   cfg.Logger,
	}
}

// ListMarkets fetches open markets sorted non-increasing by the requested
// numeric field, truncated to limit. Single upstream attempt; no retries.
func (c *Client) ListMarkets(ctx context.Context, limit int, sortBy string) ([]types.Market, error) {
	orderField, err := marketOrderField(sortBy)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("markets:%d:%s", limit, sortBy)
	if cached, ok := c.fromCache(cacheKey); ok {
		return cached.([]types.Market), nil
	}

	params := url.Values{}
	params.Add("closed", "false")
	params.Add("active", "true")
	params.Add("order", orderField)
	params.Add("ascending", "false")
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/markets", params, "list-markets")
	if err != nil {
		return nil, err
	}

	var markets []types.Market
	err = json.Unmarshal(body, &markets)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: "list-markets", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	// Re-sort locally so the contract holds even if upstream ordering drifts.
	sortMarketsDesc(markets, sortBy)
	if limit > 0 && len(markets) > limit {
		markets = markets[:limit]
	}

	MarketsFetchedTotal.Add(float64(len(markets)))
	c.toCache(cacheKey, markets)

	c.logger.Debug("fetched-markets",
		zap.Int("count", len(markets)),
		zap.String("sort-by", sortBy))

	return markets, nil
}

// TrendingMarkets fetches the markets with the highest 24-hour volume.
func (c *Client) TrendingMarkets(ctx context.Context, limit int) ([]types.Market, error) {
	return c.ListMarkets(ctx, limit, SortByVolume24hr)
}

// MarketBySlug fetches a single market by its slug.
func (c *Client) MarketBySlug(ctx context.Context, slug string) (*types.Market, error) {
	params := url.Values{}
	params.Add("slug", slug)

	body, err := c.get(ctx, "/markets", params, "market-by-slug")
	if err != nil {
		return nil, err
	}

	var markets []types.Market
	err = json.Unmarshal(body, &markets)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: "market-by-slug", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(markets) == 0 {
		return nil, &types.RemoteAPIError{API: "gamma", Op: "market-by-slug", Err: fmt.Errorf("market not found: %s", slug)}
	}

	return &markets[0], nil
}

// ListEvents fetches open events sorted non-increasing by the requested
// field, truncated to limit. sortBy is volume24hr or number_of_markets;
// the latter is sorted locally since Gamma cannot order by it.
func (c *Client) ListEvents(ctx context.Context, limit int, sortBy string) ([]types.Event, error) {
	if sortBy != SortByVolume24hr && sortBy != SortByMarketCount {
		return nil, &types.RemoteAPIError{API: "gamma", Op: "list-events",
			Err: fmt.Errorf("invalid sort field %q (valid: %s, %s)", sortBy, SortByVolume24hr, SortByMarketCount)}
	}

	cacheKey := fmt.Sprintf("events:%d:%s", limit, sortBy)
	if cached, ok := c.fromCache(cacheKey); ok {
		return cached.([]types.Event), nil
	}

	params := url.Values{}
	params.Add("active", "true")
	params.Add("archived", "false")
	params.Add("closed", "false")
	params.Add("order", "volume24hr")
	params.Add("ascending", "false")
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/events", params, "list-events")
	if err != nil {
		return nil, err
	}

	var events []types.Event
	err = json.Unmarshal(body, &events)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: "list-events", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if sortBy == SortByMarketCount {
		sort.SliceStable(events, func(i, j int) bool {
			return len(events[i].Markets) > len(events[j].Markets)
		})
	} else {
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Volume24hr > events[j].Volume24hr
		})
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	EventsFetchedTotal.Add(float64(len(events)))
	c.toCache(cacheKey, events)

	return events, nil
}

// TradeableEvents fetches open events and keeps only those open for trading.
func (c *Client) TradeableEvents(ctx context.Context, limit int) ([]types.Event, error) {
	events, err := c.ListEvents(ctx, limit, SortByVolume24hr)
	if err != nil {
		return nil, err
	}
	return FilterTradeableEvents(events), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string) ([]byte, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: op, Err: err}
	}

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "polymarket-agent/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		RequestErrorsTotal.Inc()
		return nil, &types.RemoteAPIError{API: "gamma", Op: op, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	RequestDurationSeconds.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		RequestErrorsTotal.Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, &types.RemoteAPIError{
			API:        "gamma",
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.RemoteAPIError{API: "gamma", Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}

	return body, nil
}

func (c *Client) fromCache(key string) (interface{}, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Client) toCache(key string, value interface{}) {
	if c.cache != nil {
		c.cache.Set(key, value, c.cacheTTL)
	}
}

func marketOrderField(sortBy string) (string, error) {
	switch sortBy {
	case SortBySpread:
		return "spread", nil
	case SortByVolume:
		return "volumeNum", nil
	case SortByVolume24hr:
		return "volume24hr", nil
	default:
		return "", &types.RemoteAPIError{API: "gamma", Op: "list-markets",
			Err: fmt.Errorf("invalid sort field %q (valid: %s, %s, %s)", sortBy, SortBySpread, SortByVolume, SortByVolume24hr)}
	}
}

func sortMarketsDesc(markets []types.Market, sortBy string) {
	key := func(m *types.Market) float64 {
		switch sortBy {
		case SortBySpread:
			return m.Spread
		case SortByVolume:
			return m.Volume
		default:
			return m.Volume24hr
		}
	}
	sort.SliceStable(markets, func(i, j int) bool {
		return key(&markets[i]) > key(&markets[j])
	})
}
