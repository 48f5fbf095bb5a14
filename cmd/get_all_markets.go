package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/polymarket-agent/internal/gamma"
	"github.com/spf13/cobra"
)

var getAllMarketsCmd = &cobra.Command{
	Use:   "get-all-markets",
	Short: "List open markets from the Gamma API",
	RunE:  runGetAllMarkets,
}

var (
	allMarketsLimit  int
	allMarketsSortBy string
)

func init() {
	rootCmd.AddCommand(getAllMarketsCmd)

	getAllMarketsCmd.Flags().IntVarP(&allMarketsLimit, "limit", "l", 5, "Maximum number of markets")
	getAllMarketsCmd.Flags().StringVarP(&allMarketsSortBy, "sort-by", "s", gamma.SortBySpread, "Sort field: spread, volume or volume24hr")
}

func runGetAllMarkets(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	markets, err := client.ListMarkets(ctx, allMarketsLimit, allMarketsSortBy)
	if err != nil {
		return err
	}

	fmt.Printf("Open markets (sorted by %s):\n\n", allMarketsSortBy)
	renderMarketsTable(markets)

	return nil
}
