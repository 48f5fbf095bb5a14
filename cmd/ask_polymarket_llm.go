package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var askPolymarketLLMCmd = &cobra.Command{
	Use:   "ask-polymarket-llm <question>",
	Short: "Ask the LLM a question enriched with live market and event data",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAskPolymarketLLM,
}

var askPolymarketLimit int

func init() {
	rootCmd.AddCommand(askPolymarketLLMCmd)

	askPolymarketLLMCmd.Flags().IntVarP(&askPolymarketLimit, "limit", "l", 10, "Markets and events included as context")
}

func runAskPolymarketLLM(cmd *cobra.Command, args []string) error {
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

	markets, err := gammaClient.TrendingMarkets(ctx, askPolymarketLimit)
	if err != nil {
		return err
	}

	events, err := gammaClient.TradeableEvents(ctx, askPolymarketLimit)
	if err != nil {
		return err
	}

	logger.Info("context-fetched",
		zap.Int("markets", len(markets)),
		zap.Int("events", len(events)))

	answer, err := llmClient.AskWithMarketContext(ctx, strings.Join(args, " "), markets, events)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
