package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mselser95/polymarket-agent/pkg/stream"
	"github.com/spf13/cobra"
)

var watchMarketCmd = &cobra.Command{
	Use:   "watch-market <slug>",
	Short: "Stream live book updates for a market",
	Long: `Looks up the market by slug and subscribes to the CLOB market
websocket channel for its outcome tokens, printing book and price_change
updates until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchMarket,
}

func init() {
	rootCmd.AddCommand(watchMarketCmd)
}

func runWatchMarket(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	gammaClient := newGammaClient(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	market, err := gammaClient.MarketBySlug(lookupCtx, args[0])
	if err != nil {
		return err
	}
	if len(market.TokenIDs) == 0 {
		return fmt.Errorf("market %s has no outcome tokens", args[0])
	}

	fmt.Printf("Watching: %s\n", market.Question)
	for i, outcome := range market.Outcomes {
		if i < len(market.OutcomePrices) {
			fmt.Printf("  %s @ %.3f\n", outcome, market.OutcomePrices[i])
		}
	}
	fmt.Println()

	client, err := stream.NewClient(cfg.ClobWSURL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	err = client.Subscribe(market.TokenIDs)
	if err != nil {
		return err
	}

	outcomeByToken := make(map[string]string, len(market.TokenIDs))
	for i, tokenID := range market.TokenIDs {
		if i < len(market.Outcomes) {
			outcomeByToken[tokenID] = market.Outcomes[i]
		}
	}

	return client.Listen(ctx, func(u stream.MarketUpdate) {
		label := outcomeByToken[u.AssetID]
		if label == "" {
			label = u.AssetID
		}

		switch u.EventType {
		case "book":
			bid, ask, ok := u.BestBidAsk()
			if ok {
				fmt.Printf("[book]         %-8s bid %.3f ask %.3f\n", label, bid, ask)
			}
		case "price_change":
			for _, ch := range u.Changes {
				fmt.Printf("[price_change] %-8s %s %s @ %s\n", label, ch.Side, ch.Size, ch.Price)
			}
		}
	})
}
