package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/polymarket-agent/internal/gamma"
	"github.com/spf13/cobra"
)

var getAllEventsCmd = &cobra.Command{
	Use:   "get-all-events",
	Short: "List open events from the Gamma API",
	RunE:  runGetAllEvents,
}

var (
	allEventsLimit  int
	allEventsSortBy string
)

func init() {
	rootCmd.AddCommand(getAllEventsCmd)

	getAllEventsCmd.Flags().IntVarP(&allEventsLimit, "limit", "l", 5, "Maximum number of events")
	getAllEventsCmd.Flags().StringVarP(&allEventsSortBy, "sort-by", "s", gamma.SortByMarketCount, "Sort field: number_of_markets or volume24hr")
}

func runGetAllEvents(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	events, err := client.ListEvents(ctx, allEventsLimit, allEventsSortBy)
	if err != nil {
		return err
	}

	fmt.Printf("Open events (sorted by %s):\n\n", allEventsSortBy)
	renderEventsTable(events)

	return nil
}
