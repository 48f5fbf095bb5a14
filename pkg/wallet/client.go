// Package wallet reads on-chain balances and Data API positions for the
// trading wallet.
package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

const (
	polygonUSDC        = "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"
	polygonCTFExchange = "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"
)

// Client handles wallet data fetching from blockchain and APIs.
type Client struct {
	rpcURL     string
	dataAPIURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// Balances holds on-chain token balances.
type Balances struct {
	POL           *big.Int // native token, in wei
	USDC          *big.Int // in 6-decimal units
	USDCAllowance *big.Int // CTF exchange allowance, in 6-decimal units
}

// USDCFloat returns the USDC balance as a float for display and gating.
func (b *Balances) USDCFloat() float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(b.USDC), big.NewFloat(1e6)).Float64()
	return f
}

// Position represents a market position from the Data API.
type Position struct {
	MarketSlug   string
	Outcome      string
	Size         float64
	Value        float64
	InitialValue float64
	CashPnL      float64
	PercentPnL   float64
}

type dataAPIPosition struct {
	Asset        string  `json:"asset"`
	ConditionID  string  `json:"conditionId"`
	Size         float64 `json:"size"`
	AvgPrice     float64 `json:"avgPrice"`
	InitialValue float64 `json:"initialValue"`
	CurrentValue float64 `json:"currentValue"`
	CashPnL      float64 `json:"cashPnl"`
	PercentPnL   float64 `json:"percentPnl"`
	CurPrice     float64 `json:"curPrice"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Outcome      string  `json:"outcome"`
}

// NewClient creates a new wallet client.
func NewClient(rpcURL, dataAPIURL string, logger *zap.Logger) (*Client, error) {
	if rpcURL == "" {
		return nil, errors.New("rpcURL cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Client{
		rpcURL:     rpcURL,
		dataAPIURL: strings.TrimSuffix(dataAPIURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}, nil
}

// GetBalances fetches on-chain token balances.
func (c *Client) GetBalances(ctx context.Context, address common.Address) (*Balances, error) {
	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC: %w", err)
	}
	defer client.Close()

	polBalance, err := client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("get POL balance: %w", err)
	}

	usdcBalance, err := c.getERC20Balance(ctx, client, address, polygonUSDC)
	if err != nil {
		return nil, fmt.Errorf("get USDC balance: %w", err)
	}

	allowance, err := c.getERC20Allowance(ctx, client, address, polygonUSDC, polygonCTFExchange)
	if err != nil {
		return nil, fmt.Errorf("get USDC allowance: %w", err)
	}

	return &Balances{
		POL:           polBalance,
		USDC:          usdcBalance,
		USDCAllowance: allowance,
	}, nil
}

// getERC20Balance fetches ERC20 token balance for an address.
func (c *Client) getERC20Balance(
	ctx context.Context,
	client *ethclient.Client,
	owner common.Address,
	tokenAddr string,
) (*big.Int, error) {
	balanceOfABI := `[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

	parsedABI, err := abi.JSON(strings.NewReader(balanceOfABI))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}

	data, err := parsedABI.Pack("balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("pack ABI: %w", err)
	}

	tokenAddress := common.HexToAddress(tokenAddr)
	msg := ethereum.CallMsg{
		To:   &tokenAddress,
		Data: data,
	}

	result, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call contract: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

// getERC20Allowance fetches ERC20 token allowance.
func (c *Client) getERC20Allowance(
	ctx context.Context,
	client *ethclient.Client,
	owner common.Address,
	tokenAddr string,
	spender string,
) (*big.Int, error) {
	allowanceABI := `[{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

	parsedABI, err := abi.JSON(strings.NewReader(allowanceABI))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}

	data, err := parsedABI.Pack("allowance", owner, common.HexToAddress(spender))
	if err != nil {
		return nil, fmt.Errorf("pack ABI: %w", err)
	}

	tokenAddress := common.HexToAddress(tokenAddr)
	msg := ethereum.CallMsg{
		To:   &tokenAddress,
		Data: data,
	}

	result, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call contract: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

// GetPositions fetches open positions from the Polymarket Data API.
func (c *Client) GetPositions(ctx context.Context, address string) ([]Position, error) {
	url := fmt.Sprintf("%s/positions?user=%s&sizeThreshold=0.01", c.dataAPIURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var apiPositions []dataAPIPosition
	err = json.NewDecoder(resp.Body).Decode(&apiPositions)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	positions := make([]Position, 0, len(apiPositions))
	for _, pos := range apiPositions {
		if pos.Size > 0 {
			positions = append(positions, Position{
				MarketSlug:   pos.Slug,
				Outcome:      pos.Outcome,
				Size:         pos.Size,
				Value:        pos.CurrentValue,
				InitialValue: pos.InitialValue,
				CashPnL:      pos.CashPnL,
				PercentPnL:   pos.PercentPnL,
			})
		}
	}

	c.logger.Debug("positions-fetched",
		zap.String("address", address),
		zap.Int("count", len(positions)))

	return positions, nil
}
