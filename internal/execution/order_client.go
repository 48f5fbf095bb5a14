// Package execution builds, signs and submits orders to the Polymarket CLOB.
package execution

import (
	"context"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"github.com/polymarket/go-order-utils/pkg/builder"
	"github.com/polymarket/go-order-utils/pkg/model"
	"go.uber.org/zap"
)

// OrderClient signs and submits orders to the Polymarket CLOB.
type OrderClient struct {
	baseURL       string
	apiKey        string
	secret        string
	passphrase    string
	privateKey    *ecdsa.PrivateKey
	address       string // EOA address (signer)
	proxyAddress  string // Proxy address (maker/funder)
	signatureType model.SignatureType
	orderBuilder  builder.ExchangeOrderBuilder
	httpClient    *http.Client
	logger        *zap.Logger
}

// OrderClientConfig holds configuration for the order client.
type OrderClientConfig struct {
	BaseURL       string
	APIKey        string
	Secret        string
	Passphrase    string
	PrivateKey    string
	Address       string
	ProxyAddress  string
	SignatureType int
	Logger        *zap.Logger
}

// NewOrderClient creates a new order client.
func NewOrderClient(cfg *OrderClientConfig) (*OrderClient, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	// Derive EOA address if not provided
	address := cfg.Address
	if address == "" {
		publicKey := privateKey.Public()
		publicKeyECDSA, _ := publicKey.(*ecdsa.PublicKey)
		address = crypto.PubkeyToAddress(*publicKeyECDSA).Hex()
	}

	chainID := big.NewInt(137) // Polygon mainnet
	orderBuilder := builder.NewExchangeOrderBuilderImpl(chainID, nil)

	return &OrderClient{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		secret:        cfg.Secret,
		passphrase:    cfg.Passphrase,
		privateKey:    privateKey,
		address:       address,
		proxyAddress:  cfg.ProxyAddress,
		signatureType: model.SignatureType(cfg.SignatureType),
		orderBuilder:  orderBuilder,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        cfg.Logger,
	}, nil
}

// Address returns the EOA address derived from the signing key.
func (c *OrderClient) Address() string {
	return c.address
}

// SignedOrderJSON represents a signed order in JSON format.
type SignedOrderJSON struct {
	Salt          int64  `json:"salt"` // Integer, not string
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Side          string `json:"side"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	SignatureType int    `json:"signatureType"` // Integer, not string
	Signature     string `json:"signature"`
}

// OrderResponse represents the API response for an order.
type OrderResponse struct {
	OrderID string `json:"orderID"`
	Status  string `json:"status"`
	Success bool   `json:"success"`
}

// ExecuteTrade buys size USDC worth of the given outcome at the market's
// current price. The order is submitted fill-or-kill so a stale price never
// leaves a resting order behind.
func (c *OrderClient) ExecuteTrade(ctx context.Context, market *types.Market, outcome string, size float64) (string, error) {
	tokenID, ok := market.TokenFor(outcome)
	if !ok {
		return "", &types.ExecutionError{Stage: "build", Err: fmt.Errorf("market %s has no token for outcome %q", market.ID, outcome)}
	}
	price, ok := market.PriceFor(outcome)
	if !ok || price <= 0 {
		return "", &types.ExecutionError{Stage: "build", Err: fmt.Errorf("market %s has no usable price for outcome %q", market.ID, outcome)}
	}

	makerAddress := c.address
	if c.proxyAddress != "" {
		makerAddress = c.proxyAddress
	}

	orderData := &model.OrderData{
		Maker:         makerAddress,
		Taker:         "0x0000000000000000000000000000000000000000",
		TokenId:       tokenID,
		MakerAmount:   usdToRawAmount(size),
		TakerAmount:   usdToRawAmount(size / price),
		Side:          model.BUY,
		FeeRateBps:    "0",
		Nonce:         "0",
		Signer:        c.address,
		Expiration:    "0",
		SignatureType: c.signatureType,
	}

	signedOrder, err := c.orderBuilder.BuildSignedOrder(c.privateKey, orderData, model.CTFExchange)
	if err != nil {
		return "", &types.ExecutionError{Stage: "sign", Err: err}
	}

	c.logger.Info("order-built",
		zap.String("market-id", market.ID),
		zap.String("outcome", outcome),
		zap.Float64("price", price),
		zap.Float64("size", size))

	start := time.Now()
	resp, err := c.submitOrder(ctx, signedOrder)
	OrderSubmitDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		OrdersFailedTotal.Inc()
		return "", err
	}

	OrdersSubmittedTotal.Inc()
	c.logger.Info("order-submitted",
		zap.String("order-id", resp.OrderID),
		zap.String("status", resp.Status))

	return resp.OrderID, nil
}

func (c *OrderClient) submitOrder(ctx context.Context, order *model.SignedOrder) (*OrderResponse, error) {
	sideStr := "BUY"
	if order.Side.Uint64() == uint64(model.SELL) {
		sideStr = "SELL"
	}

	jsonOrder := SignedOrderJSON{
		Salt:          order.Salt.Int64(),
		Maker:         order.Maker.Hex(),
		Signer:        order.Signer.Hex(),
		Taker:         order.Taker.Hex(),
		TokenID:       order.TokenId.String(),
		MakerAmount:   order.MakerAmount.String(),
		TakerAmount:   order.TakerAmount.String(),
		Side:          sideStr,
		Expiration:    order.Expiration.String(),
		Nonce:         order.Nonce.String(),
		FeeRateBps:    order.FeeRateBps.String(),
		SignatureType: int(order.SignatureType.Int64()),
		Signature:     "0x" + common.Bytes2Hex(order.Signature),
	}

	// "owner" is the API key, not the maker address
	orderRequest := map[string]interface{}{
		"order":     jsonOrder,
		"owner":     c.apiKey,
		"orderType": "FOK",
	}

	reqBody, err := json.Marshal(orderRequest)
	if err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("marshal request: %w", err)}
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	method := "POST"
	requestPath := "/order"

	signature, err := c.l2Signature(timestamp, method, requestPath, string(reqBody))
	if err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("create request: %w", err)}
	}

	// POLY_ADDRESS is the EOA address derived from the signing key
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("POLY_API_KEY", c.apiKey)
	req.Header.Set("POLY_SIGNATURE", signature)
	req.Header.Set("POLY_TIMESTAMP", timestamp)
	req.Header.Set("POLY_PASSPHRASE", c.passphrase)
	req.Header.Set("POLY_ADDRESS", c.address)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var orderResp OrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, &types.ExecutionError{Stage: "submit", Err: fmt.Errorf("parse response: %w", err)}
	}

	return &orderResp, nil
}

// l2Signature computes the HMAC signature for CLOB L2 authentication. The
// secret is URL-safe base64, as is the resulting signature.
func (c *OrderClient) l2Signature(timestamp, method, requestPath, body string) (string, error) {
	secretBytes, err := base64.URLEncoding.DecodeString(c.secret)
	if err != nil {
		return "", fmt.Errorf("decode secret: %w", err)
	}

	h := hmac.New(sha256.New, secretBytes)
	h.Write([]byte(timestamp + method + requestPath + body))
	return base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}

func usdToRawAmount(usd float64) string {
	rawAmount := int64(usd * 1000000)
	return fmt.Sprintf("%d", rawAmount)
}
