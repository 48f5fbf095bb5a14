// Package stream subscribes to the CLOB market websocket channel and
// delivers book and price_change updates for a set of token ids.
package stream

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MarketUpdate is a single update from the market channel.
type MarketUpdate struct {
	EventType string `json:"event_type"`
	AssetID   string `json:"asset_id"`
	Market    string `json:"market"`
	Timestamp string `json:"timestamp"`

	// book events
	Bids []PriceLevel `json:"bids,omitempty"`
	Asks []PriceLevel `json:"asks,omitempty"`

	// price_change events
	Changes []PriceChange `json:"changes,omitempty"`
}

// PriceLevel is one side of the book at a price.
type PriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// PriceChange is a delta at a price level.
type PriceChange struct {
	Price string `json:"price"`
	Side  string `json:"side"`
	Size  string `json:"size"`
}

// BestBidAsk extracts the top of book from a book event. Returns false for
// non-book events or empty books.
func (u *MarketUpdate) BestBidAsk() (bid, ask float64, ok bool) {
	if u.EventType != "book" || len(u.Bids) == 0 || len(u.Asks) == 0 {
		return 0, 0, false
	}
	bid, err := strconv.ParseFloat(u.Bids[0].Price, 64)
	if err != nil {
		return 0, 0, false
	}
	ask, err = strconv.ParseFloat(u.Asks[0].Price, 64)
	if err != nil {
		return 0, 0, false
	}
	return bid, ask, true
}

// Client is a market-channel websocket subscriber.
type Client struct {
	url    string
	conn   *websocket.Conn
	logger *zap.Logger
}

// NewClient dials the market channel endpoint.
func NewClient(url string, logger *zap.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	return &Client{
		url:    url,
		conn:   conn,
		logger: logger,
	}, nil
}

type subscribeMessage struct {
	Type      string   `json:"type"`
	Channel   string   `json:"channel"`
	AssetsIDs []string `json:"assets_ids"`
}

// Subscribe registers interest in the given token ids.
func (c *Client) Subscribe(tokenIDs []string) error {
	err := c.conn.WriteJSON(subscribeMessage{
		Type:      "subscribe",
		Channel:   "market",
		AssetsIDs: tokenIDs,
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	c.logger.Info("subscribed", zap.Int("tokens", len(tokenIDs)))
	return nil
}

// Listen reads updates and invokes handle for each until the context ends
// or the connection drops. Updates arrive batched; each element is handled
// separately.
func (c *Client) Listen(ctx context.Context, handle func(MarketUpdate)) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-done:
		}
	}()

	for {
		var updates []MarketUpdate
		err := c.conn.ReadJSON(&updates)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("read: %w", err)
			}
			return nil
		}

		for i := range updates {
			handle(updates[i])
		}
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
