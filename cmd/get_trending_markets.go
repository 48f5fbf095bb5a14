package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var getTrendingMarketsCmd = &cobra.Command{
	Use:   "get-trending-markets",
	Short: "List markets with the highest 24h volume",
	RunE:  runGetTrendingMarkets,
}

var trendingMarketsLimit int

func init() {
	rootCmd.AddCommand(getTrendingMarketsCmd)

	getTrendingMarketsCmd.Flags().IntVarP(&trendingMarketsLimit, "limit", "l", 10, "Maximum number of markets")
}

func runGetTrendingMarkets(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	markets, err := client.TrendingMarkets(ctx, trendingMarketsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Trending markets (24h volume):\n\n")
	renderMarketsTable(markets)

	return nil
}
