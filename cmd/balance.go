package cmd

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mselser95/polymarket-agent/pkg/wallet"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Check wallet balances and positions",
	Long: `Display current holdings for the configured wallet:
- POL balance (for gas)
- USDC balance (for trading)
- USDC allowance (approved to CTF Exchange)
- Active positions (outcome tokens held)`,
	RunE: runBalance,
}

var showPositions bool

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().BoolVarP(&showPositions, "positions", "p", true, "Show active positions")
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.PrivateKey == "" {
		return errors.New("POLYGON_WALLET_PRIVATE_KEY not set")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return errors.New("error casting public key to ECDSA")
	}
	address := crypto.PubkeyToAddress(*publicKey)

	fmt.Printf("=== Wallet Balance Sheet ===\n\n")
	fmt.Printf("Address: %s\n\n", address.Hex())

	client, err := wallet.NewClient(cfg.PolygonRPCURL, cfg.DataAPIURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	balances, err := client.GetBalances(ctx, address)
	if err != nil {
		return err
	}

	polFloat := new(big.Float).Quo(new(big.Float).SetInt(balances.POL), big.NewFloat(1e18))
	fmt.Printf("POL Balance:  %s POL\n", polFloat.Text('f', 6))
	fmt.Printf("USDC Balance: %.2f USDC\n", balances.USDCFloat())

	allowanceFloat := new(big.Float).Quo(new(big.Float).SetInt(balances.USDCAllowance), big.NewFloat(1e6))
	if balances.USDCAllowance.Cmp(new(big.Int).SetUint64(1e18)) > 0 {
		fmt.Printf("USDC Allowance: Unlimited\n")
	} else {
		fmt.Printf("USDC Allowance: %s USDC\n", allowanceFloat.Text('f', 2))
	}

	if showPositions {
		fmt.Printf("\n=== Active Positions ===\n\n")
		positions, err := client.GetPositions(ctx, address.Hex())
		if err != nil {
			fmt.Printf("Error fetching positions: %v\n", err)
		} else if len(positions) == 0 {
			fmt.Printf("No active positions\n")
		} else {
			totalValue := 0.0
			for _, pos := range positions {
				fmt.Printf("Market: %s\n", pos.MarketSlug)
				fmt.Printf("  Outcome: %s\n", pos.Outcome)
				fmt.Printf("  Size: %.2f tokens\n", pos.Size)
				fmt.Printf("  Value: $%.2f (PnL %+.2f%%)\n\n", pos.Value, pos.PercentPnL)
				totalValue += pos.Value
			}
			fmt.Printf("Total Position Value: $%.2f\n", totalValue)
		}
	}

	return nil
}
