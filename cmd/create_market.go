package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var createMarketCmd = &cobra.Command{
	Use:   "create-market",
	Short: "Draft a new market proposal from trending market data",
	RunE:  runCreateMarket,
}

var createMarketLimit int

func init() {
	rootCmd.AddCommand(createMarketCmd)

	createMarketCmd.Flags().IntVarP(&createMarketLimit, "limit", "l", 10, "Trending markets used as inspiration")
}

func runCreateMarket(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		return err
	}
	gammaClient := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	markets, err := gammaClient.TrendingMarkets(ctx, createMarketLimit)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for i := range markets {
		fmt.Fprintf(&sb, "- %s (24h volume %.0f)\n", markets[i].Question, markets[i].Volume24hr)
	}

	proposal, err := llmClient.CreateMarketIdea(ctx, sb.String())
	if err != nil {
		return err
	}

	fmt.Println(proposal)
	return nil
}
